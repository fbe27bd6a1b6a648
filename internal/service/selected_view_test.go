package service

import (
	"context"
	"errors"
	"testing"

	"strata/internal/domain"
	"strata/internal/domain/models"
)

func newSelectedService(repo *fakeSelectedRepo, folders *fakeFolderRepo) *selectedViewService {
	svc := NewSelectedViewService(repo, folders, newFakeCodeAllocator(), fakeTxManager{}, discardLogger())
	return svc.(*selectedViewService)
}

func TestSelectViewRejectsDoubleSelection(t *testing.T) {
	svc := newSelectedService(newFakeSelectedRepo(), newFakeFolderRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "view-1", nil); err != nil {
		t.Fatalf("first select: %v", err)
	}

	_, err := svc.Create(ctx, "view-1", nil)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second select err = %v, want ErrConflict", err)
	}

	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatal("err is not a ConflictError")
	}
	if conflict.ResourceID != "view-1" {
		t.Errorf("conflict resource %q, want view-1", conflict.ResourceID)
	}
}

func TestSelectViewRequiresViewID(t *testing.T) {
	svc := newSelectedService(newFakeSelectedRepo(), newFakeFolderRepo())
	if _, err := svc.Create(context.Background(), "", nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCheckSelectedRoundTrip(t *testing.T) {
	svc := newSelectedService(newFakeSelectedRepo(), newFakeFolderRepo())
	ctx := context.Background()

	status, err := svc.CheckSelected(ctx, "view-9")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if status.Selected || status.ID != nil {
		t.Fatalf("unselected view reported %+v", status)
	}

	sv, err := svc.Create(ctx, "view-9", nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	status, err = svc.CheckSelected(ctx, "view-9")
	if err != nil {
		t.Fatalf("check after select: %v", err)
	}
	if !status.Selected || status.ID == nil || *status.ID != sv.ID {
		t.Fatalf("selected view reported %+v, want id %s", status, sv.ID)
	}

	deleted, err := svc.Delete(ctx, sv.ID)
	if err != nil || !deleted {
		t.Fatalf("delete = %v, %v", deleted, err)
	}

	status, err = svc.CheckSelected(ctx, "view-9")
	if err != nil {
		t.Fatalf("check after delete: %v", err)
	}
	if status.Selected {
		t.Fatal("deleted selection still reported selected")
	}
}

func TestSelectedGetAllBuildsTree(t *testing.T) {
	repo := newFakeSelectedRepo()
	folders := newFakeFolderRepo()
	svc := newSelectedService(repo, folders)
	ctx := context.Background()

	folderSvc := NewFolderService(folders, newFakeCodeAllocator(), fakeTxManager{}, discardLogger())
	f, err := folderSvc.Create(ctx, &models.CreateFolderRequest{Type: "selected_folder", Name: strPtr("Favorites")})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}

	if _, err := svc.Create(ctx, "view-a", &f.ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := svc.Create(ctx, "view-b", nil); err != nil {
		t.Fatalf("select: %v", err)
	}

	nodes, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d root nodes, want 2", len(nodes))
	}

	var sawFolder, sawLoose bool
	for _, n := range nodes {
		if n.IsFolder() {
			sawFolder = true
			if len(n.Children) != 1 || n.Children[0].Selected.ViewID != "view-a" {
				t.Errorf("folder children wrong: %+v", n.Children)
			}
		} else if n.Selected != nil && n.Selected.ViewID == "view-b" {
			sawLoose = true
		}
	}
	if !sawFolder || !sawLoose {
		t.Errorf("tree missing nodes: folder=%v loose=%v", sawFolder, sawLoose)
	}
}

func TestGetViewLocationNotFound(t *testing.T) {
	svc := newSelectedService(newFakeSelectedRepo(), newFakeFolderRepo())
	if _, err := svc.GetViewLocation(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
