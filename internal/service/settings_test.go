package service

import (
	"context"
	"encoding/json"
	"testing"

	"strata/internal/domain/models"
)

func TestSettingsUpdateMergesKeys(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewSettingsService(repo, discardLogger())
	ctx := context.Background()

	if err := svc.Update(ctx, models.Settings{
		"panel_widths": json.RawMessage(`{"left":240}`),
		"editor_width": json.RawMessage(`800`),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	// A later partial update must leave unrelated keys untouched.
	if err := svc.Update(ctx, models.Settings{
		"editor_width": json.RawMessage(`920`),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	all, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if string(all["panel_widths"]) != `{"left":240}` {
		t.Errorf("panel_widths = %s", all["panel_widths"])
	}
	if string(all["editor_width"]) != `920` {
		t.Errorf("editor_width = %s", all["editor_width"])
	}
}
