package models

import (
	"time"
)

// Folder is a user-created grouping container. Type binds it to one hierarchy
// level ("shareholder_folder", ..., "selected_folder"); OwnerID scopes it to
// one specific parent instance at levels below the root; ParentID nests it
// within another folder of the same type.
type Folder struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	ParentID  *string   `json:"parent_id"`
	OwnerID   *string   `json:"owner_id"`
	Expanded  bool      `json:"expanded"`
	SortKey   int64     `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateFolderRequest carries the folder creation payload.
type CreateFolderRequest struct {
	Name     *string
	Type     string
	ParentID *string
	OwnerID  *string
}

// FolderPatch carries a partial folder update. ParentIDSet distinguishes
// re-parenting to root (nil) from leaving the parent untouched.
type FolderPatch struct {
	Name        *string
	Expanded    *bool
	ParentID    *string
	ParentIDSet bool
	SortKey     *int64
}

// Empty reports whether the patch would change nothing.
func (p FolderPatch) Empty() bool {
	return p.Name == nil && p.Expanded == nil && !p.ParentIDSet && p.SortKey == nil
}
