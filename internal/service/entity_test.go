package service

import (
	"context"
	"testing"

	"strata/internal/domain"
	"strata/internal/domain/models"
)

func TestCreateCascadesOneChildPerLevel(t *testing.T) {
	entityRepo := newFakeEntityRepo()
	folderRepo := newFakeFolderRepo()
	chain := newEntityChain(entityRepo, folderRepo)

	root, err := chain[domain.KindShareholder].Create(context.Background(), &models.CreateEntityRequest{}, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	parentID := root.ID
	for _, kind := range domain.Levels {
		rows := entityRepo.rows[kind]
		if len(rows) != 1 {
			t.Fatalf("kind %s: got %d rows, want 1", kind, len(rows))
		}
		for _, e := range rows {
			if e.Name != defaultName {
				t.Errorf("kind %s: name %q, want %q", kind, e.Name, defaultName)
			}
			if kind != domain.KindShareholder {
				if e.ParentID == nil || *e.ParentID != parentID {
					t.Errorf("kind %s: parent %v, want %s", kind, e.ParentID, parentID)
				}
			}
			if kind == domain.KindTable && e.Color != defaultColor {
				t.Errorf("table color %q, want %q", e.Color, defaultColor)
			}
			if kind == domain.KindView && e.ViewType != defaultViewType {
				t.Errorf("view type %q, want %q", e.ViewType, defaultViewType)
			}
			if e.Code == "" {
				t.Errorf("kind %s: empty code", kind)
			}
			parentID = e.ID
		}
	}
}

func TestCreateWithoutCascade(t *testing.T) {
	entityRepo := newFakeEntityRepo()
	chain := newEntityChain(entityRepo, newFakeFolderRepo())

	if _, err := chain[domain.KindCompany].Create(context.Background(), &models.CreateEntityRequest{}, false); err != nil {
		t.Fatalf("create: %v", err)
	}

	if got := len(entityRepo.rows[domain.KindCompany]); got != 1 {
		t.Fatalf("companies: got %d, want 1", got)
	}
	for _, kind := range []domain.Kind{domain.KindProject, domain.KindTable, domain.KindView} {
		if got := len(entityRepo.rows[kind]); got != 0 {
			t.Errorf("kind %s: got %d rows, want 0", kind, got)
		}
	}
}

func TestCreateAppliesRequestFields(t *testing.T) {
	tests := []struct {
		name         string
		kind         domain.Kind
		req          models.CreateEntityRequest
		wantName     string
		wantColor    string
		wantViewType string
	}{
		{
			name:     "explicit name",
			kind:     domain.KindProject,
			req:      models.CreateEntityRequest{Name: strPtr("Q3 rollout")},
			wantName: "Q3 rollout",
		},
		{
			name:      "table color override",
			kind:      domain.KindTable,
			req:       models.CreateEntityRequest{Color: strPtr("#ff0000")},
			wantName:  defaultName,
			wantColor: "#ff0000",
		},
		{
			name:         "view type override",
			kind:         domain.KindView,
			req:          models.CreateEntityRequest{ViewType: strPtr("kanban")},
			wantName:     defaultName,
			wantViewType: "kanban",
		},
		{
			name:     "empty name falls back",
			kind:     domain.KindShareholder,
			req:      models.CreateEntityRequest{Name: strPtr("")},
			wantName: defaultName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := newEntityChain(newFakeEntityRepo(), newFakeFolderRepo())
			e, err := chain[tt.kind].Create(context.Background(), &tt.req, false)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if e.Name != tt.wantName {
				t.Errorf("name %q, want %q", e.Name, tt.wantName)
			}
			if tt.wantColor != "" && e.Color != tt.wantColor {
				t.Errorf("color %q, want %q", e.Color, tt.wantColor)
			}
			if tt.wantViewType != "" && e.ViewType != tt.wantViewType {
				t.Errorf("view type %q, want %q", e.ViewType, tt.wantViewType)
			}
		})
	}
}

func TestDeleteDoesNotCascade(t *testing.T) {
	entityRepo := newFakeEntityRepo()
	chain := newEntityChain(entityRepo, newFakeFolderRepo())

	if _, err := chain[domain.KindShareholder].Create(context.Background(), &models.CreateEntityRequest{}, true); err != nil {
		t.Fatalf("create: %v", err)
	}

	var companyID string
	for id := range entityRepo.rows[domain.KindCompany] {
		companyID = id
	}

	deleted, err := chain[domain.KindCompany].Delete(context.Background(), companyID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("delete reported no row")
	}

	if got := len(entityRepo.rows[domain.KindShareholder]); got != 1 {
		t.Errorf("shareholders: got %d, want 1", got)
	}
	for _, kind := range []domain.Kind{domain.KindProject, domain.KindTable, domain.KindView} {
		if got := len(entityRepo.rows[kind]); got != 1 {
			t.Errorf("kind %s: got %d rows, want 1 (descendants must survive)", kind, got)
		}
	}
}

func TestGetAllScopesByOwner(t *testing.T) {
	entityRepo := newFakeEntityRepo()
	folderRepo := newFakeFolderRepo()
	chain := newEntityChain(entityRepo, folderRepo)
	ctx := context.Background()

	a, _ := chain[domain.KindShareholder].Create(ctx, &models.CreateEntityRequest{Name: strPtr("A")}, false)
	b, _ := chain[domain.KindShareholder].Create(ctx, &models.CreateEntityRequest{Name: strPtr("B")}, false)
	if _, err := chain[domain.KindCompany].Create(ctx, &models.CreateEntityRequest{ParentID: &a.ID}, false); err != nil {
		t.Fatalf("create company: %v", err)
	}
	if _, err := chain[domain.KindCompany].Create(ctx, &models.CreateEntityRequest{ParentID: &b.ID}, false); err != nil {
		t.Fatalf("create company: %v", err)
	}

	nodes, err := chain[domain.KindCompany].GetAll(ctx, &a.ID)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	if got := nodes[0].Entity.ParentID; got == nil || *got != a.ID {
		t.Errorf("node parent %v, want %s", got, a.ID)
	}
}

func TestGetAllMergesFoldersAndEntities(t *testing.T) {
	entityRepo := newFakeEntityRepo()
	folderRepo := newFakeFolderRepo()
	chain := newEntityChain(entityRepo, folderRepo)
	ctx := context.Background()

	folders := NewFolderService(folderRepo, newFakeCodeAllocator(), fakeTxManager{}, discardLogger())
	f, err := folders.Create(ctx, &models.CreateFolderRequest{
		Name: strPtr("Group"),
		Type: domain.KindShareholder.FolderType(),
	})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}

	inside, _ := chain[domain.KindShareholder].Create(ctx, &models.CreateEntityRequest{Name: strPtr("inside"), FolderID: &f.ID}, false)
	outside, _ := chain[domain.KindShareholder].Create(ctx, &models.CreateEntityRequest{Name: strPtr("outside")}, false)

	nodes, err := chain[domain.KindShareholder].GetAll(ctx, nil)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d root nodes, want 2", len(nodes))
	}

	var folderNode *models.TreeNode
	for _, n := range nodes {
		if n.IsFolder() {
			folderNode = n
		} else if n.Entity.ID != outside.ID {
			t.Errorf("unexpected root entity %s", n.Entity.ID)
		}
	}
	if folderNode == nil {
		t.Fatal("folder missing from tree")
	}
	if len(folderNode.Children) != 1 || folderNode.Children[0].Entity.ID != inside.ID {
		t.Fatalf("folder children = %v, want [%s]", folderNode.Children, inside.ID)
	}
}

func TestReorderSkipsUnknownIDs(t *testing.T) {
	entityRepo := newFakeEntityRepo()
	chain := newEntityChain(entityRepo, newFakeFolderRepo())
	ctx := context.Background()

	e, err := chain[domain.KindProject].Create(ctx, &models.CreateEntityRequest{}, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	items := []models.ReorderItem{
		{ID: e.ID, SortKey: 10},
		{ID: "no-such-row", SortKey: 20},
	}
	if err := chain[domain.KindProject].Reorder(ctx, items); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if got := entityRepo.rows[domain.KindProject][e.ID].SortKey; got != 10 {
		t.Errorf("sort key %d, want 10", got)
	}

	// Applying the same batch again must be a no-op.
	if err := chain[domain.KindProject].Reorder(ctx, items); err != nil {
		t.Fatalf("reorder again: %v", err)
	}
	if got := entityRepo.rows[domain.KindProject][e.ID].SortKey; got != 10 {
		t.Errorf("sort key after repeat %d, want 10", got)
	}
}

func TestCodesAreSequential(t *testing.T) {
	chain := newEntityChain(newFakeEntityRepo(), newFakeFolderRepo())
	ctx := context.Background()

	first, err := chain[domain.KindShareholder].Create(ctx, &models.CreateEntityRequest{}, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := chain[domain.KindShareholder].Create(ctx, &models.CreateEntityRequest{}, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if first.Code != "1001" || second.Code != "1002" {
		t.Errorf("codes %q, %q; want 1001, 1002", first.Code, second.Code)
	}
}
