// Package discounts resolves partner businesses and their discounts for a
// neighborhood.
package discounts

import (
	"context"

	"github.com/Elephante152/habitat/models"
)

// Catalog supplies neighborhoods and the businesses inside them
type Catalog interface {
	Neighborhoods(ctx context.Context, city string) ([]string, error)
	Businesses(ctx context.Context, neighborhood string) ([]models.Business, error)
}

// DemoNeighborhoods is served by StaticCatalog for every city
var DemoNeighborhoods = []string{"Downtown", "West End", "Kitsilano", "Mount Pleasant", "Gastown"}

// StaticCatalog serves the fixed demo neighborhoods and partners
type StaticCatalog struct{}

var _ Catalog = StaticCatalog{}

func (StaticCatalog) Neighborhoods(context.Context, string) ([]string, error) {
	return append([]string(nil), DemoNeighborhoods...), nil
}

// Businesses builds a fresh partner list tagged with neighborhood
func (StaticCatalog) Businesses(_ context.Context, neighborhood string) ([]models.Business, error) {
	return []models.Business{
		{
			Name:               "Cafe Habitat",
			Type:               models.Restaurant,
			Neighborhood:       neighborhood,
			DiscountHours:      "2PM - 4PM",
			DiscountPercentage: 50,
			DiscountMethod:     "Special menu for Habitat users",
		},
		{
			Name:               "Eco Grocers",
			Type:               models.Retail,
			Neighborhood:       neighborhood,
			DiscountHours:      "7PM - 9PM",
			DiscountPercentage: 15,
			DiscountMethod:     "Discount applied at checkout",
		},
		{
			Name:               "Green Fitness",
			Type:               models.Service,
			Neighborhood:       neighborhood,
			DiscountHours:      "1PM - 3PM",
			DiscountPercentage: 30,
			DiscountMethod:     "Discount on select services",
		},
	}, nil
}
