package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"strata/internal/domain/models"
)

// Setting keys as stored in the server's blob.
const (
	keyPanelWidths     = "panel_widths"
	keyEditorWidth     = "editor_width"
	keyCollapsedPanels = "collapsed_panels"
	keyGridLayout      = "grid_layout"
)

// defaultEditorWidth applies until a stored value is loaded.
const defaultEditorWidth = 800

// SettingsStore holds the UI layout state and persists it with a trailing-edge
// debounce: every mutation restarts a single pending timer, and Flush/Close
// force the pending write out synchronously so no mutation is ever lost.
type SettingsStore struct {
	mu        sync.Mutex
	api       SettingsAPI
	logger    *slog.Logger
	delay     time.Duration
	timer     *time.Timer
	dirty     bool
	panels    map[string]int
	editor    int
	collapsed map[string]bool
	grid      json.RawMessage
}

// NewSettingsStore creates a store with default layout values and a 500ms
// debounce window.
func NewSettingsStore(api SettingsAPI, logger *slog.Logger) *SettingsStore {
	return newSettingsStore(api, logger, 500*time.Millisecond)
}

func newSettingsStore(api SettingsAPI, logger *slog.Logger, delay time.Duration) *SettingsStore {
	return &SettingsStore{
		api:       api,
		logger:    logger,
		delay:     delay,
		panels:    make(map[string]int),
		editor:    defaultEditorWidth,
		collapsed: make(map[string]bool),
	}
}

// Load reads the stored blob once and merges recognized keys over the
// defaults. A load failure keeps the defaults and continues.
func (s *SettingsStore) Load(ctx context.Context) {
	settings, err := s.api.LoadSettings(ctx)
	if err != nil {
		s.logger.Warn("settings load failed, keeping defaults", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok := settings[keyPanelWidths]; ok {
		var widths map[string]int
		if err := json.Unmarshal(raw, &widths); err == nil {
			s.panels = widths
		}
	}
	if raw, ok := settings[keyEditorWidth]; ok {
		var width int
		if err := json.Unmarshal(raw, &width); err == nil {
			s.editor = width
		}
	}
	if raw, ok := settings[keyCollapsedPanels]; ok {
		var collapsed map[string]bool
		if err := json.Unmarshal(raw, &collapsed); err == nil {
			s.collapsed = collapsed
		}
	}
	if raw, ok := settings[keyGridLayout]; ok {
		s.grid = raw
	}
}

// SetPanelWidth records one panel's width and schedules a save.
func (s *SettingsStore) SetPanelWidth(panel string, width int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panels[panel] = width
	s.scheduleSave()
}

// PanelWidth returns one panel's stored width, fallback when unset.
func (s *SettingsStore) PanelWidth(panel string, fallback int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.panels[panel]; ok {
		return w
	}
	return fallback
}

// SetEditorWidth records the editor width and schedules a save.
func (s *SettingsStore) SetEditorWidth(width int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor = width
	s.scheduleSave()
}

// EditorWidth returns the stored editor width.
func (s *SettingsStore) EditorWidth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor
}

// SetPanelCollapsed records one panel's collapsed flag and schedules a save.
func (s *SettingsStore) SetPanelCollapsed(panel string, collapsed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collapsed[panel] = collapsed
	s.scheduleSave()
}

// PanelCollapsed reports one panel's collapsed flag.
func (s *SettingsStore) PanelCollapsed(panel string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collapsed[panel]
}

// SetGridLayout records the opaque grid layout blob and schedules a save.
func (s *SettingsStore) SetGridLayout(layout json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid = layout
	s.scheduleSave()
}

// Flush writes any pending state synchronously.
func (s *SettingsStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	s.dirty = false
	payload := s.snapshot()
	s.mu.Unlock()

	if err := s.api.SaveSettings(ctx, payload); err != nil {
		s.logger.Error("settings save failed", "error", err)
		return err
	}
	return nil
}

// Close flushes pending state on teardown.
func (s *SettingsStore) Close() error {
	return s.Flush(context.Background())
}

// scheduleSave requires the lock to be held. The single timer slot means a
// burst of mutations collapses into one save, fired delay after the last one.
func (s *SettingsStore) scheduleSave() {
	s.dirty = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		_ = s.Flush(context.Background())
	})
}

// snapshot requires the lock to be held.
func (s *SettingsStore) snapshot() models.Settings {
	panels, _ := json.Marshal(s.panels)
	editor, _ := json.Marshal(s.editor)
	collapsed, _ := json.Marshal(s.collapsed)

	payload := models.Settings{
		keyPanelWidths:     panels,
		keyEditorWidth:     editor,
		keyCollapsedPanels: collapsed,
	}
	if s.grid != nil {
		payload[keyGridLayout] = s.grid
	}
	return payload
}
