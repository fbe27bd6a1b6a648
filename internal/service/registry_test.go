package service

import (
	"context"
	"errors"
	"testing"

	"strata/internal/domain"
	"strata/internal/domain/models"
)

func TestArrangeRegistryDispatch(t *testing.T) {
	entityRepo := newFakeEntityRepo()
	chain := newEntityChain(entityRepo, newFakeFolderRepo())

	registry := NewArrangeRegistry()
	for _, kind := range domain.Levels {
		registry.Register(kind, chain[kind])
	}

	e, err := chain[domain.KindTable].Create(context.Background(), &models.CreateEntityRequest{}, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	arranger, err := registry.For(domain.KindTable)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	folder := "folder-1"
	moved, err := arranger.Move(context.Background(), e.ID, &folder)
	if err != nil || !moved {
		t.Fatalf("move = %v, %v", moved, err)
	}
	if got := entityRepo.rows[domain.KindTable][e.ID].FolderID; got == nil || *got != folder {
		t.Errorf("folder = %v, want %s", got, folder)
	}
}

func TestArrangeRegistryUnknownKind(t *testing.T) {
	registry := NewArrangeRegistry()
	if _, err := registry.For(domain.Kind("gadget")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}
