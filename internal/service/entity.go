package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"strata/internal/domain"
	"strata/internal/domain/models"
	"strata/internal/domain/repositories"
	"strata/internal/domain/services"
	"strata/internal/tree"
)

// Placeholder values for fields the creation payload leaves out.
const (
	defaultName     = "Untitled"
	defaultColor    = "#3b82f6"
	defaultViewType = "grid"
)

// entityService implements the EntityService interface for one hierarchy
// level. The instances chain: each service knows the one below it so a create
// can cascade a placeholder child down to the view level.
type entityService struct {
	kind       domain.Kind
	entityRepo repositories.EntityRepository
	folderRepo repositories.FolderRepository
	codes      repositories.CodeAllocator
	txManager  repositories.TransactionManager
	child      services.EntityService // nil at the view level
	logger     *slog.Logger
}

// NewEntityService creates the service for one level. child is the next
// level's service, or nil for the leaf of the chain.
func NewEntityService(
	kind domain.Kind,
	entityRepo repositories.EntityRepository,
	folderRepo repositories.FolderRepository,
	codes repositories.CodeAllocator,
	txManager repositories.TransactionManager,
	child services.EntityService,
	logger *slog.Logger,
) services.EntityService {
	return &entityService{
		kind:       kind,
		entityRepo: entityRepo,
		folderRepo: folderRepo,
		codes:      codes,
		txManager:  txManager,
		child:      child,
		logger:     logger,
	}
}

// GetAll loads the level's folders and entities for one scope and merges them
// into the ordered tree.
func (s *entityService) GetAll(ctx context.Context, ownerID *string) ([]*models.TreeNode, error) {
	owner := models.NormalizeRef(ownerID)

	// Root-level folders are unowned; scoped levels see only the folders of
	// their parent instance (or the unowned set when no parent is selected).
	scope := repositories.FolderScope{
		Type:        s.kind.FolderType(),
		Owner:       owner,
		OwnerScoped: s.kind.ParentColumn() != "",
	}
	folders, err := s.folderRepo.ListByScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("load %s folders: %w", s.kind, err)
	}

	entities, err := s.entityRepo.ListByParent(ctx, s.kind, owner)
	if err != nil {
		return nil, fmt.Errorf("load %ss: %w", s.kind, err)
	}

	leaves := make([]*models.TreeNode, 0, len(entities))
	for _, e := range entities {
		leaves = append(leaves, models.EntityNode(e))
	}

	return tree.Build(folders, leaves), nil
}

// Create stores a new entity and, when cascading, one placeholder child per
// level down the chain. The code allocation and the insert share one
// transaction; cascaded children each commit on their own.
func (s *entityService) Create(ctx context.Context, req *models.CreateEntityRequest, cascade bool) (*models.Entity, error) {
	now := time.Now()
	e := &models.Entity{
		ID:        uuid.NewString(),
		Name:      defaultName,
		Kind:      s.kind,
		FolderID:  models.NormalizeRef(req.FolderID),
		ParentID:  models.NormalizeRef(req.ParentID),
		SortKey:   now.UnixMilli(),
		CreatedAt: now,
	}
	if req.Name != nil && *req.Name != "" {
		e.Name = *req.Name
	}
	if s.kind == domain.KindTable {
		e.Color = defaultColor
		if req.Color != nil && *req.Color != "" {
			e.Color = *req.Color
		}
	}
	if s.kind == domain.KindView {
		e.ViewType = defaultViewType
		if req.ViewType != nil && *req.ViewType != "" {
			e.ViewType = *req.ViewType
		}
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		code, err := s.codes.Next(txCtx)
		if err != nil {
			return err
		}
		e.Code = code
		return s.entityRepo.Insert(txCtx, e)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("entity created",
		"kind", s.kind,
		"id", e.ID,
		"code", e.Code,
		"cascade", cascade,
	)

	if cascade && s.child != nil {
		childReq := &models.CreateEntityRequest{ParentID: &e.ID}
		if _, err := s.child.Create(ctx, childReq, true); err != nil {
			return nil, fmt.Errorf("cascade %s under %s %s: %w", s.kind.Next(), s.kind, e.ID, err)
		}
	}

	return e, nil
}

// Update applies the fields present in the patch
func (s *entityService) Update(ctx context.Context, id string, patch models.EntityPatch) (*models.Entity, error) {
	return s.entityRepo.Update(ctx, s.kind, id, patch)
}

// Delete removes exactly one row. Descendant levels keep their rows by
// policy; they only drop out of the parent's subtree.
func (s *entityService) Delete(ctx context.Context, id string) (bool, error) {
	return s.entityRepo.Delete(ctx, s.kind, id)
}

// Move reassigns folder membership only
func (s *entityService) Move(ctx context.Context, id string, containerID *string) (bool, error) {
	return s.entityRepo.SetFolder(ctx, s.kind, id, containerID)
}

// Reorder applies the batch; ids matching no row are skipped.
func (s *entityService) Reorder(ctx context.Context, items []models.ReorderItem) error {
	return s.entityRepo.Reorder(ctx, s.kind, items)
}
