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
)

// folderService implements the FolderService interface
type folderService struct {
	folderRepo repositories.FolderRepository
	codes      repositories.CodeAllocator
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	codes repositories.CodeAllocator,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		codes:      codes,
		txManager:  txManager,
		logger:     logger,
	}
}

func folderTypeRule() validation.Rule {
	types := domain.FolderTypes()
	values := make([]interface{}, len(types))
	for i, t := range types {
		values[i] = t
	}
	return validation.In(values...)
}

// GetAll returns the flat folder list of one scope ordered by sort key. The
// owner filter only applies when an owner id is given; listings without one
// see every folder of the type.
func (s *folderService) GetAll(ctx context.Context, folderType string, ownerID *string) ([]models.Folder, error) {
	if err := validation.Validate(folderType, validation.Required, folderTypeRule()); err != nil {
		return nil, fmt.Errorf("folder type: %s: %w", err, domain.ErrValidation)
	}

	owner := models.NormalizeRef(ownerID)
	return s.folderRepo.ListByScope(ctx, repositories.FolderScope{
		Type:        folderType,
		Owner:       owner,
		OwnerScoped: owner != nil,
	})
}

// Create stores a new folder
func (s *folderService) Create(ctx context.Context, req *models.CreateFolderRequest) (*models.Folder, error) {
	if err := validation.Validate(req.Type, validation.Required, folderTypeRule()); err != nil {
		return nil, fmt.Errorf("folder type: %s: %w", err, domain.ErrValidation)
	}

	now := time.Now()
	f := &models.Folder{
		ID:        uuid.NewString(),
		Name:      defaultName,
		Type:      req.Type,
		ParentID:  models.NormalizeRef(req.ParentID),
		OwnerID:   models.NormalizeRef(req.OwnerID),
		Expanded:  true,
		SortKey:   now.UnixMilli(),
		CreatedAt: now,
	}
	if req.Name != nil && *req.Name != "" {
		f.Name = *req.Name
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		code, err := s.codes.Next(txCtx)
		if err != nil {
			return err
		}
		f.Code = code
		return s.folderRepo.Insert(txCtx, f)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created", "id", f.ID, "code", f.Code, "type", f.Type)
	return f, nil
}

// Update may rename, toggle expanded, re-parent or re-sort. Re-parenting is
// restricted to folders of the same type.
func (s *folderService) Update(ctx context.Context, id string, patch models.FolderPatch) (*models.Folder, error) {
	if patch.ParentIDSet && patch.ParentID != nil && *patch.ParentID != "" {
		if err := s.checkSameType(ctx, id, *patch.ParentID); err != nil {
			return nil, err
		}
	}
	return s.folderRepo.Update(ctx, id, patch)
}

// Delete removes exactly one folder. Contained folders and entities keep
// their rows; the tree builder simply stops surfacing them.
func (s *folderService) Delete(ctx context.Context, id string) (bool, error) {
	return s.folderRepo.Delete(ctx, id)
}

// Move re-parents a folder under another folder of the same type (or to the
// root when containerID is nil).
func (s *folderService) Move(ctx context.Context, id string, containerID *string) (bool, error) {
	parentID := models.NormalizeRef(containerID)
	if parentID != nil {
		if err := s.checkSameType(ctx, id, *parentID); err != nil {
			return false, err
		}
	}
	return s.folderRepo.SetParent(ctx, id, parentID)
}

// Reorder applies the batch; ids matching no row are skipped.
func (s *folderService) Reorder(ctx context.Context, items []models.ReorderItem) error {
	return s.folderRepo.Reorder(ctx, items)
}

func (s *folderService) checkSameType(ctx context.Context, id, parentID string) error {
	f, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	parent, err := s.folderRepo.GetByID(ctx, parentID)
	if err != nil {
		return err
	}
	if f.Type != parent.Type {
		return fmt.Errorf("folder %s (%s) cannot nest under %s (%s): %w",
			id, f.Type, parentID, parent.Type, domain.ErrValidation)
	}
	return nil
}
