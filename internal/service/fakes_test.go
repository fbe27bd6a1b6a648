package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"strata/internal/domain"
	"strata/internal/domain/models"
	"strata/internal/domain/repositories"
	"strata/internal/domain/services"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

// fakeTxManager runs the function directly; the fakes have no transactions.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// fakeCodeAllocator counts up from 1000 like the persisted counter does.
type fakeCodeAllocator struct {
	current int64
}

func newFakeCodeAllocator() *fakeCodeAllocator {
	return &fakeCodeAllocator{current: 1000}
}

func (a *fakeCodeAllocator) Next(ctx context.Context) (string, error) {
	a.current++
	return fmt.Sprintf("%04d", a.current), nil
}

// fakeEntityRepo keeps entities in per-kind maps.
type fakeEntityRepo struct {
	rows map[domain.Kind]map[string]*models.Entity
}

func newFakeEntityRepo() *fakeEntityRepo {
	rows := make(map[domain.Kind]map[string]*models.Entity)
	for _, kind := range domain.Levels {
		rows[kind] = make(map[string]*models.Entity)
	}
	return &fakeEntityRepo{rows: rows}
}

func (r *fakeEntityRepo) Insert(ctx context.Context, e *models.Entity) error {
	cp := *e
	r.rows[e.Kind][e.ID] = &cp
	return nil
}

func (r *fakeEntityRepo) GetByID(ctx context.Context, kind domain.Kind, id string) (*models.Entity, error) {
	e, ok := r.rows[kind][id]
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEntityRepo) ListByParent(ctx context.Context, kind domain.Kind, parentID *string) ([]*models.Entity, error) {
	var out []*models.Entity
	for _, e := range r.rows[kind] {
		if parentID != nil && kind.ParentColumn() != "" {
			if e.ParentID == nil || *e.ParentID != *parentID {
				continue
			}
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortKey < out[j].SortKey })
	return out, nil
}

func (r *fakeEntityRepo) Update(ctx context.Context, kind domain.Kind, id string, patch models.EntityPatch) (*models.Entity, error) {
	e, ok := r.rows[kind][id]
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.FolderIDSet {
		e.FolderID = models.NormalizeRef(patch.FolderID)
	}
	if patch.SortKey != nil {
		e.SortKey = *patch.SortKey
	}
	if patch.Color != nil {
		e.Color = *patch.Color
	}
	if patch.ViewType != nil {
		e.ViewType = *patch.ViewType
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEntityRepo) Delete(ctx context.Context, kind domain.Kind, id string) (bool, error) {
	if _, ok := r.rows[kind][id]; !ok {
		return false, nil
	}
	delete(r.rows[kind], id)
	return true, nil
}

func (r *fakeEntityRepo) SetFolder(ctx context.Context, kind domain.Kind, id string, folderID *string) (bool, error) {
	e, ok := r.rows[kind][id]
	if !ok {
		return false, nil
	}
	e.FolderID = models.NormalizeRef(folderID)
	return true, nil
}

func (r *fakeEntityRepo) Reorder(ctx context.Context, kind domain.Kind, items []models.ReorderItem) error {
	for _, item := range items {
		e, ok := r.rows[kind][item.ID]
		if !ok {
			continue
		}
		e.SortKey = item.SortKey
		e.FolderID = models.NormalizeRef(item.FolderID)
	}
	return nil
}

// fakeFolderRepo keeps folders in one map.
type fakeFolderRepo struct {
	rows map[string]*models.Folder
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{rows: make(map[string]*models.Folder)}
}

func (r *fakeFolderRepo) Insert(ctx context.Context, f *models.Folder) error {
	cp := *f
	r.rows[f.ID] = &cp
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	f, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFolderRepo) ListByScope(ctx context.Context, scope repositories.FolderScope) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.rows {
		if f.Type != scope.Type {
			continue
		}
		if scope.Owner != nil {
			if f.OwnerID == nil || *f.OwnerID != *scope.Owner {
				continue
			}
		} else if scope.OwnerScoped && f.OwnerID != nil {
			continue
		}
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortKey < out[j].SortKey })
	return out, nil
}

func (r *fakeFolderRepo) Update(ctx context.Context, id string, patch models.FolderPatch) (*models.Folder, error) {
	f, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	if patch.Name != nil {
		f.Name = *patch.Name
	}
	if patch.Expanded != nil {
		f.Expanded = *patch.Expanded
	}
	if patch.ParentIDSet {
		f.ParentID = models.NormalizeRef(patch.ParentID)
	}
	if patch.SortKey != nil {
		f.SortKey = *patch.SortKey
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func (r *fakeFolderRepo) SetParent(ctx context.Context, id string, parentID *string) (bool, error) {
	f, ok := r.rows[id]
	if !ok {
		return false, nil
	}
	f.ParentID = models.NormalizeRef(parentID)
	return true, nil
}

func (r *fakeFolderRepo) Reorder(ctx context.Context, items []models.ReorderItem) error {
	for _, item := range items {
		f, ok := r.rows[item.ID]
		if !ok {
			continue
		}
		f.SortKey = item.SortKey
		f.ParentID = models.NormalizeRef(item.ParentID)
	}
	return nil
}

// fakeSelectedRepo enforces the one-selection-per-view invariant like the
// unique index does.
type fakeSelectedRepo struct {
	rows   map[string]*models.SelectedView
	byView map[string]string
}

func newFakeSelectedRepo() *fakeSelectedRepo {
	return &fakeSelectedRepo{
		rows:   make(map[string]*models.SelectedView),
		byView: make(map[string]string),
	}
}

func (r *fakeSelectedRepo) Insert(ctx context.Context, sv *models.SelectedView) error {
	if _, ok := r.byView[sv.ViewID]; ok {
		return &domain.ConflictError{
			Message:      "view already selected",
			ResourceType: "view",
			ResourceID:   sv.ViewID,
		}
	}
	cp := *sv
	r.rows[sv.ID] = &cp
	r.byView[sv.ViewID] = sv.ID
	return nil
}

func (r *fakeSelectedRepo) GetByID(ctx context.Context, id string) (*models.SelectedView, error) {
	sv, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("selected view %s: %w", id, domain.ErrNotFound)
	}
	cp := *sv
	return &cp, nil
}

func (r *fakeSelectedRepo) List(ctx context.Context) ([]*models.SelectedView, error) {
	var out []*models.SelectedView
	for _, sv := range r.rows {
		cp := *sv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortKey < out[j].SortKey })
	return out, nil
}

func (r *fakeSelectedRepo) FindByViewID(ctx context.Context, viewID string) (*models.SelectedView, error) {
	id, ok := r.byView[viewID]
	if !ok {
		return nil, nil
	}
	cp := *r.rows[id]
	return &cp, nil
}

func (r *fakeSelectedRepo) Delete(ctx context.Context, id string) (bool, error) {
	sv, ok := r.rows[id]
	if !ok {
		return false, nil
	}
	delete(r.byView, sv.ViewID)
	delete(r.rows, id)
	return true, nil
}

func (r *fakeSelectedRepo) SetFolder(ctx context.Context, id string, folderID *string) (bool, error) {
	sv, ok := r.rows[id]
	if !ok {
		return false, nil
	}
	sv.FolderID = models.NormalizeRef(folderID)
	return true, nil
}

func (r *fakeSelectedRepo) Reorder(ctx context.Context, items []models.ReorderItem) error {
	for _, item := range items {
		sv, ok := r.rows[item.ID]
		if !ok {
			continue
		}
		sv.SortKey = item.SortKey
		sv.FolderID = models.NormalizeRef(item.FolderID)
	}
	return nil
}

func (r *fakeSelectedRepo) ResolveLocation(ctx context.Context, viewID string) (*models.ViewLocation, error) {
	return nil, fmt.Errorf("view %s location: %w", viewID, domain.ErrNotFound)
}

// fakeSettingsRepo keeps the blob in a map.
type fakeSettingsRepo struct {
	values map[string]json.RawMessage
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{values: make(map[string]json.RawMessage)}
}

func (r *fakeSettingsRepo) GetAll(ctx context.Context) (models.Settings, error) {
	out := models.Settings{}
	for k, v := range r.values {
		out[k] = v
	}
	return out, nil
}

func (r *fakeSettingsRepo) Upsert(ctx context.Context, key string, value json.RawMessage) error {
	r.values[key] = value
	return nil
}

// newEntityChain wires the five level services bottom-up over shared fakes.
func newEntityChain(entityRepo *fakeEntityRepo, folderRepo *fakeFolderRepo) map[domain.Kind]services.EntityService {
	codes := newFakeCodeAllocator()
	tx := fakeTxManager{}
	logger := discardLogger()

	chain := make(map[domain.Kind]services.EntityService)
	var child services.EntityService
	for i := len(domain.Levels) - 1; i >= 0; i-- {
		kind := domain.Levels[i]
		svc := NewEntityService(kind, entityRepo, folderRepo, codes, tx, child, logger)
		chain[kind] = svc
		child = svc
	}
	return chain
}
