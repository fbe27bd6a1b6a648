package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"strata/internal/domain"
	"strata/internal/domain/models"
)

// PanelOrder is the fixed left-to-right panel sequence. The five hierarchy
// levels chain; the selected panel loads independently.
var PanelOrder = []domain.Kind{
	domain.KindShareholder,
	domain.KindCompany,
	domain.KindProject,
	domain.KindTable,
	domain.KindView,
	domain.KindSelected,
}

// Slot is one panel's state snapshot.
type Slot struct {
	Data     []*models.TreeNode
	Selected *models.TreeNode
	Loading  bool
}

// Panels is the cascade controller. Selecting an item in one panel reloads
// the panel below it with the new scope; every chained load completes before
// the triggering call returns, so callers never wait on timers to observe a
// settled state.
type Panels struct {
	mu      sync.Mutex
	fetcher Fetcher
	slots   map[domain.Kind]*Slot
	logger  *slog.Logger
}

// NewPanels creates a controller with empty slots.
func NewPanels(fetcher Fetcher, logger *slog.Logger) *Panels {
	slots := make(map[domain.Kind]*Slot, len(PanelOrder))
	for _, kind := range PanelOrder {
		slots[kind] = &Slot{}
	}
	return &Panels{fetcher: fetcher, slots: slots, logger: logger}
}

// Snapshot returns a copy of one panel's slot.
func (p *Panels) Snapshot(kind domain.Kind) Slot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return *p.slots[kind]
}

// Selection returns the selected node of one panel, nil when none.
func (p *Panels) Selection(kind domain.Kind) *models.TreeNode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slots[kind].Selected
}

// LoadAndSelect loads one panel's data. With autoSelect, the first non-folder
// node (depth-first) becomes the selection and the next panel loads in turn.
func (p *Panels) LoadAndSelect(ctx context.Context, kind domain.Kind, autoSelect bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadAndSelect(ctx, kind, autoSelect)
}

// SelectItem makes item the panel's selection and cascades a load of the next
// panel scoped to it.
func (p *Panels) SelectItem(ctx context.Context, kind domain.Kind, item *models.TreeNode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selectItem(ctx, kind, item)
}

// LocateToView walks the panels to a selected view: resolves the view's
// ancestry, then selects shareholder, company, project and table in order
// (each selection loading the next panel) and finally the view itself.
func (p *Panels) LocateToView(ctx context.Context, sv *models.SelectedView) error {
	location, err := p.fetcher.FetchViewLocation(ctx, sv.ViewID)
	if err != nil {
		p.logger.Warn("view location lookup failed", "view_id", sv.ViewID, "error", err)
		return fmt.Errorf("locate view %s: %w", sv.ViewID, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.loadAndSelect(ctx, domain.KindShareholder, false); err != nil {
		return err
	}

	steps := []struct {
		kind domain.Kind
		ref  *models.LocationRef
	}{
		{domain.KindShareholder, location.Shareholder},
		{domain.KindCompany, location.Company},
		{domain.KindProject, location.Project},
		{domain.KindTable, location.Table},
	}
	for _, step := range steps {
		// The server only ever returns a fully-populated location, but don't
		// trust the wire: a partial document must not panic the controller.
		if step.ref == nil {
			return fmt.Errorf("locate view %s: location missing %s: %w",
				sv.ViewID, step.kind, domain.ErrNotFound)
		}
		node := findNode(p.slots[step.kind].Data, step.ref.ID)
		if node == nil {
			return fmt.Errorf("locate view %s: %s %s not in panel: %w",
				sv.ViewID, step.kind, step.ref.ID, domain.ErrNotFound)
		}
		if err := p.selectItem(ctx, step.kind, node); err != nil {
			return err
		}
	}

	if location.View == nil {
		return fmt.Errorf("locate view %s: location missing view: %w", sv.ViewID, domain.ErrNotFound)
	}
	viewNode := findNode(p.slots[domain.KindView].Data, location.View.ID)
	if viewNode == nil {
		return fmt.Errorf("locate view %s: view not in panel: %w", sv.ViewID, domain.ErrNotFound)
	}
	p.slots[domain.KindView].Selected = viewNode
	return nil
}

// loadAndSelect requires the lock to be held.
func (p *Panels) loadAndSelect(ctx context.Context, kind domain.Kind, autoSelect bool) error {
	slot := p.slots[kind]

	var parentID *string
	if kind.IsLevel() && kind.ParentColumn() != "" {
		parent := p.slots[p.previousLevel(kind)].Selected
		if parent == nil {
			// No parent selection means nothing to show - clear without a
			// request and propagate the clear downward.
			p.clearFrom(kind)
			return nil
		}
		id := parent.ID()
		parentID = &id
	}

	slot.Loading = true
	nodes, err := p.fetch(ctx, kind, parentID)
	slot.Loading = false
	if err != nil {
		// The slot keeps its previous data on failure.
		return fmt.Errorf("load %s panel: %w", kind, err)
	}
	slot.Data = nodes

	if !autoSelect {
		return nil
	}

	first := firstLeaf(nodes)
	if first == nil {
		// Only an empty result clears the selection; a folders-only tree
		// leaves the prior selection (and the panels below it) untouched.
		if len(nodes) == 0 {
			slot.Selected = nil
			if next := p.nextLevel(kind); next != "" {
				p.clearFrom(next)
			}
		}
		return nil
	}

	return p.selectItem(ctx, kind, first)
}

// selectItem requires the lock to be held.
func (p *Panels) selectItem(ctx context.Context, kind domain.Kind, item *models.TreeNode) error {
	p.slots[kind].Selected = item

	next := p.nextLevel(kind)
	if next == "" {
		return nil
	}
	return p.loadAndSelect(ctx, next, true)
}

func (p *Panels) fetch(ctx context.Context, kind domain.Kind, parentID *string) ([]*models.TreeNode, error) {
	if kind == domain.KindSelected {
		return p.fetcher.FetchSelected(ctx)
	}
	return p.fetcher.FetchTree(ctx, kind, parentID)
}

// previousLevel returns the hierarchy panel above kind.
func (p *Panels) previousLevel(kind domain.Kind) domain.Kind {
	for i, k := range domain.Levels {
		if k == kind && i > 0 {
			return domain.Levels[i-1]
		}
	}
	return ""
}

// nextLevel returns the hierarchy panel below kind, "" past the view level.
// The selected panel never chains.
func (p *Panels) nextLevel(kind domain.Kind) domain.Kind {
	if !kind.IsLevel() {
		return ""
	}
	return kind.Next()
}

// clearFrom empties data and selection for kind and every level below it.
func (p *Panels) clearFrom(kind domain.Kind) {
	for k := kind; k != ""; k = k.Next() {
		p.slots[k].Data = nil
		p.slots[k].Selected = nil
		p.slots[k].Loading = false
	}
}

// firstLeaf returns the first non-folder node depth-first, nil when the tree
// holds only folders.
func firstLeaf(nodes []*models.TreeNode) *models.TreeNode {
	for _, n := range nodes {
		if !n.IsFolder() {
			return n
		}
		if leaf := firstLeaf(n.Children); leaf != nil {
			return leaf
		}
	}
	return nil
}

// findNode searches a tree for a node by record id.
func findNode(nodes []*models.TreeNode, id string) *models.TreeNode {
	for _, n := range nodes {
		if n.ID() == id {
			return n
		}
		if found := findNode(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}
