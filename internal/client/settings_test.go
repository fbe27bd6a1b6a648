package client

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"strata/internal/domain/models"
)

type fakeSettingsAPI struct {
	mu      sync.Mutex
	saved   []models.Settings
	loaded  models.Settings
	loadErr error
}

func (f *fakeSettingsAPI) LoadSettings(ctx context.Context) (models.Settings, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.loaded, nil
}

func (f *fakeSettingsAPI) SaveSettings(ctx context.Context, settings models.Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, settings)
	return nil
}

func (f *fakeSettingsAPI) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

func (f *fakeSettingsAPI) lastSaved() models.Settings {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.saved) == 0 {
		return nil
	}
	return f.saved[len(f.saved)-1]
}

func TestSettingsDebounceCollapsesBurst(t *testing.T) {
	api := &fakeSettingsAPI{}
	store := newSettingsStore(api, discardLogger(), 20*time.Millisecond)

	store.SetPanelWidth("shareholder", 200)
	store.SetPanelWidth("shareholder", 220)
	store.SetEditorWidth(900)
	store.SetPanelCollapsed("view", true)

	if got := api.saveCount(); got != 0 {
		t.Fatalf("saved %d times before debounce window, want 0", got)
	}

	deadline := time.After(2 * time.Second)
	for api.saveCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("debounced save never fired")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
	// Give a straggler timer a chance to double-fire before counting.
	time.Sleep(60 * time.Millisecond)

	if got := api.saveCount(); got != 1 {
		t.Fatalf("saved %d times, want 1", got)
	}

	saved := api.lastSaved()
	var widths map[string]int
	if err := json.Unmarshal(saved[keyPanelWidths], &widths); err != nil {
		t.Fatalf("decode widths: %v", err)
	}
	if widths["shareholder"] != 220 {
		t.Errorf("width = %d, want the last value 220", widths["shareholder"])
	}
	var editor int
	if err := json.Unmarshal(saved[keyEditorWidth], &editor); err != nil || editor != 900 {
		t.Errorf("editor width = %d (%v), want 900", editor, err)
	}
}

func TestSettingsFlushWritesPendingState(t *testing.T) {
	api := &fakeSettingsAPI{}
	store := newSettingsStore(api, discardLogger(), time.Hour)

	store.SetEditorWidth(640)
	if err := store.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}

	if got := api.saveCount(); got != 1 {
		t.Fatalf("saved %d times, want 1", got)
	}

	// Nothing dirty: a second flush must not save again.
	if err := store.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := api.saveCount(); got != 1 {
		t.Fatalf("saved %d times after clean flush, want 1", got)
	}
}

func TestSettingsCloseFlushes(t *testing.T) {
	api := &fakeSettingsAPI{}
	store := newSettingsStore(api, discardLogger(), time.Hour)

	store.SetGridLayout(json.RawMessage(`{"cols":12}`))
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := api.saveCount(); got != 1 {
		t.Fatalf("saved %d times, want 1", got)
	}
	if string(api.lastSaved()[keyGridLayout]) != `{"cols":12}` {
		t.Errorf("grid layout = %s", api.lastSaved()[keyGridLayout])
	}
}

func TestSettingsLoadMergesOverDefaults(t *testing.T) {
	api := &fakeSettingsAPI{loaded: models.Settings{
		keyEditorWidth: json.RawMessage(`1024`),
		"unrelated":    json.RawMessage(`"ignored"`),
	}}
	store := newSettingsStore(api, discardLogger(), time.Hour)

	store.Load(context.Background())

	if got := store.EditorWidth(); got != 1024 {
		t.Errorf("editor width = %d, want 1024", got)
	}
	if got := store.PanelWidth("shareholder", 240); got != 240 {
		t.Errorf("unset panel width = %d, want fallback 240", got)
	}
}

func TestSettingsLoadFailureKeepsDefaults(t *testing.T) {
	api := &fakeSettingsAPI{loadErr: errors.New("offline")}
	store := newSettingsStore(api, discardLogger(), time.Hour)

	store.Load(context.Background())

	if got := store.EditorWidth(); got != defaultEditorWidth {
		t.Errorf("editor width = %d, want default %d", got, defaultEditorWidth)
	}
}
