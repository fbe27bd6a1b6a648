package seed

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"
	"strata/internal/domain"
	"strata/internal/domain/models"
	"strata/internal/domain/services"
)

//go:embed data/*.yaml
var dataFiles embed.FS

// ViewSpec is one view in the sample dataset.
type ViewSpec struct {
	Name     string `yaml:"name"`
	ViewType string `yaml:"view_type"`
}

// TableSpec is one table with its views.
type TableSpec struct {
	Name  string     `yaml:"name"`
	Color string     `yaml:"color"`
	Views []ViewSpec `yaml:"views"`
}

// ProjectSpec is one project with its tables.
type ProjectSpec struct {
	Name   string      `yaml:"name"`
	Tables []TableSpec `yaml:"tables"`
}

// CompanySpec is one company with its projects.
type CompanySpec struct {
	Name     string        `yaml:"name"`
	Projects []ProjectSpec `yaml:"projects"`
}

// ShareholderSpec is one root record with its subtree.
type ShareholderSpec struct {
	Name      string        `yaml:"name"`
	Companies []CompanySpec `yaml:"companies"`
}

// Dataset is the embedded sample hierarchy.
type Dataset struct {
	Shareholders []ShareholderSpec `yaml:"shareholders"`
}

// LoadDataset reads the embedded sample YAML.
func LoadDataset() (*Dataset, error) {
	data, err := dataFiles.ReadFile("data/sample.yaml")
	if err != nil {
		return nil, fmt.Errorf("read sample dataset: %w", err)
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("unmarshal sample dataset: %w", err)
	}
	return &ds, nil
}

// Seeder inserts the sample dataset through the real services so every row
// gets a code, uuid and sort key the normal way.
type Seeder struct {
	levels map[domain.Kind]services.EntityService
	logger *slog.Logger
}

// NewSeeder creates a seeder over the per-level services.
func NewSeeder(levels map[domain.Kind]services.EntityService, logger *slog.Logger) *Seeder {
	return &Seeder{levels: levels, logger: logger}
}

// Run seeds the dataset, but only into an empty hierarchy: any existing
// shareholder row (or folder) makes it a no-op.
func (s *Seeder) Run(ctx context.Context, ds *Dataset) error {
	existing, err := s.levels[domain.KindShareholder].GetAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("check shareholders: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("database not empty, skipping seed", "root_nodes", len(existing))
		return nil
	}

	for _, sh := range ds.Shareholders {
		root, err := s.create(ctx, domain.KindShareholder, sh.Name, nil, nil, nil)
		if err != nil {
			return err
		}
		for _, co := range sh.Companies {
			company, err := s.create(ctx, domain.KindCompany, co.Name, &root.ID, nil, nil)
			if err != nil {
				return err
			}
			for _, pr := range co.Projects {
				project, err := s.create(ctx, domain.KindProject, pr.Name, &company.ID, nil, nil)
				if err != nil {
					return err
				}
				for _, tb := range pr.Tables {
					table, err := s.create(ctx, domain.KindTable, tb.Name, &project.ID, strOrNil(tb.Color), nil)
					if err != nil {
						return err
					}
					for _, vw := range tb.Views {
						if _, err := s.create(ctx, domain.KindView, vw.Name, &table.ID, nil, strOrNil(vw.ViewType)); err != nil {
							return err
						}
					}
				}
			}
		}
	}

	s.logger.Info("sample dataset seeded", "shareholders", len(ds.Shareholders))
	return nil
}

func (s *Seeder) create(ctx context.Context, kind domain.Kind, name string, parentID, color, viewType *string) (*models.Entity, error) {
	e, err := s.levels[kind].Create(ctx, &models.CreateEntityRequest{
		Name:     &name,
		ParentID: parentID,
		Color:    color,
		ViewType: viewType,
	}, false)
	if err != nil {
		return nil, fmt.Errorf("seed %s %q: %w", kind, name, err)
	}
	return e, nil
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
