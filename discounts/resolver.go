package discounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Elephante152/habitat/models"
)

// ErrEmptyNeighborhood is returned when no neighborhood name is given
var ErrEmptyNeighborhood = errors.New("neighborhood is required")

// Resolver looks up discounts through a Catalog
type Resolver struct {
	catalog Catalog
}

// NewResolver creates a Resolver over catalog
func NewResolver(catalog Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Neighborhoods lists the neighborhoods offered after a search for city
func (r *Resolver) Neighborhoods(ctx context.Context, city string) ([]string, error) {
	names, err := r.catalog.Neighborhoods(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("failed to list neighborhoods: %w", err)
	}
	return names, nil
}

// SelectNeighborhood returns the partners in name. Entries the catalog tags
// with another neighborhood are dropped.
func (r *Resolver) SelectNeighborhood(ctx context.Context, name string) ([]models.Business, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyNeighborhood
	}

	all, err := r.catalog.Businesses(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load businesses for %s: %w", name, err)
	}

	businesses := make([]models.Business, 0, len(all))
	for _, b := range all {
		if b.Neighborhood == name {
			businesses = append(businesses, b)
		}
	}
	return businesses, nil
}
