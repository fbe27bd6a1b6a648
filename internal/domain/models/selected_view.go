package models

import (
	"time"
)

// SelectedView is a junction row marking one view as part of the cross-cutting
// working set. At most one row may reference a given view. The View*/Table*
// fields are denormalized from the joined view and its table for display.
type SelectedView struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	ViewID    string    `json:"view_id"`
	FolderID  *string   `json:"folder_id"`
	SortKey   int64     `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`

	ViewName   string `json:"view_name"`
	ViewType   string `json:"view_type"`
	TableName  string `json:"table_name"`
	TableColor string `json:"table_color"`
}

// LocationRef identifies one ancestor on a view's hierarchy path.
type LocationRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ViewLocation is the full ancestry of a view, root first. It is only ever
// returned fully populated - a broken link anywhere in the chain means no
// location at all.
type ViewLocation struct {
	Shareholder *LocationRef `json:"shareholder,omitempty"`
	Company     *LocationRef `json:"company,omitempty"`
	Project     *LocationRef `json:"project,omitempty"`
	Table       *LocationRef `json:"table,omitempty"`
	View        *LocationRef `json:"view,omitempty"`
}

// SelectionStatus is the result of a checkSelected lookup.
type SelectionStatus struct {
	Selected bool    `json:"selected"`
	ID       *string `json:"id,omitempty"`
}
