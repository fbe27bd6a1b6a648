package service

import (
	"fmt"

	"strata/internal/domain"
	"strata/internal/domain/services"
)

// ArrangeRegistry dispatches move and reorder requests over the closed Kind
// enum. Every addressable kind is registered at wiring time, so a lookup miss
// means an unknown kind in the request path.
type ArrangeRegistry struct {
	arrangers map[domain.Kind]services.Arranger
}

// NewArrangeRegistry creates an empty registry
func NewArrangeRegistry() *ArrangeRegistry {
	return &ArrangeRegistry{arrangers: make(map[domain.Kind]services.Arranger)}
}

// Register binds a kind to its arranger
func (r *ArrangeRegistry) Register(kind domain.Kind, a services.Arranger) {
	r.arrangers[kind] = a
}

// For resolves the arranger for a kind
func (r *ArrangeRegistry) For(kind domain.Kind) (services.Arranger, error) {
	a, ok := r.arrangers[kind]
	if !ok {
		return nil, fmt.Errorf("no arranger for kind %q: %w", kind, domain.ErrValidation)
	}
	return a, nil
}
