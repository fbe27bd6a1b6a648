package domain

import (
	"fmt"
)

// Kind identifies every record type the API can address: the five hierarchy
// levels plus the two cross-cutting collections. It is a closed set - move and
// reorder dispatch is resolved against this enum at wiring time, so there is no
// runtime "unknown type" fallback.
type Kind string

const (
	KindShareholder Kind = "shareholder"
	KindCompany     Kind = "company"
	KindProject     Kind = "project"
	KindTable       Kind = "table"
	KindView        Kind = "view"
	KindSelected    Kind = "selected"
	KindFolder      Kind = "folder"
)

// Levels lists the five hierarchy levels in chain order, root first.
var Levels = []Kind{KindShareholder, KindCompany, KindProject, KindTable, KindView}

// ParseKind validates a type discriminator from the wire.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindShareholder, KindCompany, KindProject, KindTable, KindView, KindSelected, KindFolder:
		return k, nil
	default:
		return "", fmt.Errorf("unknown kind %q: %w", s, ErrValidation)
	}
}

// IsLevel reports whether the kind is one of the five hierarchy levels.
func (k Kind) IsLevel() bool {
	switch k {
	case KindShareholder, KindCompany, KindProject, KindTable, KindView:
		return true
	}
	return false
}

// FolderType returns the folder discriminator bound to this kind's grouping
// folders ("shareholder_folder", ..., "selected_folder").
func (k Kind) FolderType() string {
	return string(k) + "_folder"
}

// ParentColumn returns the storage column referencing the level's immediate
// ancestor, or "" for the root level and non-level kinds.
func (k Kind) ParentColumn() string {
	switch k {
	case KindCompany:
		return "shareholder_id"
	case KindProject:
		return "company_id"
	case KindTable:
		return "project_id"
	case KindView:
		return "table_id"
	}
	return ""
}

// Next returns the level one step down the cascade chain, or "" at the leaf.
func (k Kind) Next() Kind {
	switch k {
	case KindShareholder:
		return KindCompany
	case KindCompany:
		return KindProject
	case KindProject:
		return KindTable
	case KindTable:
		return KindView
	}
	return ""
}

// FolderTypes lists every valid folder discriminator.
func FolderTypes() []string {
	types := make([]string, 0, len(Levels)+1)
	for _, level := range Levels {
		types = append(types, level.FolderType())
	}
	return append(types, KindSelected.FolderType())
}
