package models

import (
	"encoding/json"
	"fmt"
	"time"

	"strata/internal/domain"
)

// Entity is one hierarchy record at any of the five levels. ParentID holds the
// value of the level's parent foreign key (nil at the shareholder level); Color
// and ViewType are only populated for tables and views respectively.
type Entity struct {
	ID        string
	Code      string
	Name      string
	Kind      domain.Kind
	FolderID  *string
	ParentID  *string
	Color     string
	ViewType  string
	SortKey   int64
	CreatedAt time.Time
}

// MarshalJSON emits the level's parent reference under its column name
// (shareholder_id, company_id, ...) to keep the wire shape the clients expect.
func (e Entity) MarshalJSON() ([]byte, error) {
	m := map[string]interface{}{
		"id":         e.ID,
		"code":       e.Code,
		"name":       e.Name,
		"type":       e.Kind,
		"folder_id":  e.FolderID,
		"sort_order": e.SortKey,
		"created_at": e.CreatedAt,
	}

	if col := e.Kind.ParentColumn(); col != "" {
		m[col] = e.ParentID
	}
	if e.Kind == domain.KindTable {
		m["color"] = e.Color
	}
	if e.Kind == domain.KindView {
		m["view_type"] = e.ViewType
	}

	return json.Marshal(m)
}

// UnmarshalJSON reads the level-specific parent column back into ParentID.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var n TreeNode
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n.Entity == nil {
		return fmt.Errorf("payload is not a hierarchy entity")
	}
	*e = *n.Entity
	return nil
}

// CreateEntityRequest carries the creation payload after the handler has mapped
// wire fields. Transport-agnostic (no JSON tags).
type CreateEntityRequest struct {
	Name     *string
	FolderID *string
	ParentID *string
	Color    *string
	ViewType *string
}

// EntityPatch carries a partial update. Nil means "leave unchanged";
// FolderIDSet distinguishes "set folder_id to NULL" from "don't touch it".
type EntityPatch struct {
	Name        *string
	FolderID    *string
	FolderIDSet bool
	SortKey     *int64
	Color       *string
	ViewType    *string
}

// Empty reports whether the patch would change nothing.
func (p EntityPatch) Empty() bool {
	return p.Name == nil && !p.FolderIDSet && p.SortKey == nil && p.Color == nil && p.ViewType == nil
}

// ReorderItem is one row of a batch reorder. A nil FolderID (or ParentID for
// folders) moves the row back to the root bucket - reorder always rewrites
// placement, matching the wire contract.
type ReorderItem struct {
	ID       string
	SortKey  int64
	FolderID *string
	ParentID *string
}
