package postgres

import (
	"fmt"

	"strata/internal/domain"
)

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Shareholders  string
	Companies     string
	Projects      string
	Tables        string
	Views         string
	SelectedViews string
	Folders       string
	CodeCounter   string
	Settings      string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Shareholders:  fmt.Sprintf("%sshareholders", prefix),
		Companies:     fmt.Sprintf("%scompanies", prefix),
		Projects:      fmt.Sprintf("%sprojects", prefix),
		Tables:        fmt.Sprintf("%stables", prefix),
		Views:         fmt.Sprintf("%sviews", prefix),
		SelectedViews: fmt.Sprintf("%sselected_views", prefix),
		Folders:       fmt.Sprintf("%sfolders", prefix),
		CodeCounter:   fmt.Sprintf("%scode_counter", prefix),
		Settings:      fmt.Sprintf("%ssettings", prefix),
	}
}

// ForLevel returns the entity table backing a hierarchy level.
func (t *TableNames) ForLevel(kind domain.Kind) string {
	switch kind {
	case domain.KindShareholder:
		return t.Shareholders
	case domain.KindCompany:
		return t.Companies
	case domain.KindProject:
		return t.Projects
	case domain.KindTable:
		return t.Tables
	case domain.KindView:
		return t.Views
	}
	return ""
}
