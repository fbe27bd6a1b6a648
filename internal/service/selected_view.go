package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"strata/internal/domain"
	"strata/internal/domain/models"
	"strata/internal/domain/repositories"
	"strata/internal/domain/services"
	"strata/internal/tree"
)

// selectedViewService implements the SelectedViewService interface
type selectedViewService struct {
	selectedRepo repositories.SelectedViewRepository
	folderRepo   repositories.FolderRepository
	codes        repositories.CodeAllocator
	txManager    repositories.TransactionManager
	logger       *slog.Logger
}

// NewSelectedViewService creates a new selected-view service
func NewSelectedViewService(
	selectedRepo repositories.SelectedViewRepository,
	folderRepo repositories.FolderRepository,
	codes repositories.CodeAllocator,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.SelectedViewService {
	return &selectedViewService{
		selectedRepo: selectedRepo,
		folderRepo:   folderRepo,
		codes:        codes,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetAll merges selection folders and denormalized selections into a tree.
// The selection collection is global, so folders are never owner-filtered.
func (s *selectedViewService) GetAll(ctx context.Context) ([]*models.TreeNode, error) {
	folders, err := s.folderRepo.ListByScope(ctx, repositories.FolderScope{
		Type: domain.KindSelected.FolderType(),
	})
	if err != nil {
		return nil, fmt.Errorf("load selection folders: %w", err)
	}

	selections, err := s.selectedRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load selections: %w", err)
	}

	leaves := make([]*models.TreeNode, 0, len(selections))
	for _, sv := range selections {
		leaves = append(leaves, models.SelectedNode(sv))
	}

	return tree.Build(folders, leaves), nil
}

// Create marks a view as selected and returns the denormalized row. The
// unique index surfaces double selection as ErrConflict.
func (s *selectedViewService) Create(ctx context.Context, viewID string, folderID *string) (*models.SelectedView, error) {
	if err := validation.Validate(viewID, validation.Required); err != nil {
		return nil, fmt.Errorf("view id: %s: %w", err, domain.ErrValidation)
	}

	now := time.Now()
	sv := &models.SelectedView{
		ID:        uuid.NewString(),
		ViewID:    viewID,
		FolderID:  models.NormalizeRef(folderID),
		SortKey:   now.UnixMilli(),
		CreatedAt: now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		code, err := s.codes.Next(txCtx)
		if err != nil {
			return err
		}
		sv.Code = code
		return s.selectedRepo.Insert(txCtx, sv)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("view selected", "id", sv.ID, "view_id", viewID)

	// Re-read to pick up the view/table display fields.
	return s.selectedRepo.GetByID(ctx, sv.ID)
}

// Delete removes one selection
func (s *selectedViewService) Delete(ctx context.Context, id string) (bool, error) {
	return s.selectedRepo.Delete(ctx, id)
}

// CheckSelected reports whether a view is currently selected
func (s *selectedViewService) CheckSelected(ctx context.Context, viewID string) (models.SelectionStatus, error) {
	sv, err := s.selectedRepo.FindByViewID(ctx, viewID)
	if err != nil {
		return models.SelectionStatus{}, err
	}
	if sv == nil {
		return models.SelectionStatus{Selected: false}, nil
	}
	return models.SelectionStatus{Selected: true, ID: &sv.ID}, nil
}

// GetViewLocation resolves the full ancestry path of a view
func (s *selectedViewService) GetViewLocation(ctx context.Context, viewID string) (*models.ViewLocation, error) {
	return s.selectedRepo.ResolveLocation(ctx, viewID)
}

// Move reassigns folder membership only
func (s *selectedViewService) Move(ctx context.Context, id string, containerID *string) (bool, error) {
	return s.selectedRepo.SetFolder(ctx, id, containerID)
}

// Reorder applies the batch; ids matching no row are skipped.
func (s *selectedViewService) Reorder(ctx context.Context, items []models.ReorderItem) error {
	return s.selectedRepo.Reorder(ctx, items)
}
