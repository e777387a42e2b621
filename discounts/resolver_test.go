package discounts

import (
	"context"
	"errors"
	"testing"

	"github.com/Elephante152/habitat/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectNeighborhood_Gastown(t *testing.T) {
	r := NewResolver(StaticCatalog{})

	businesses, err := r.SelectNeighborhood(context.Background(), "Gastown")
	require.NoError(t, err)
	require.Len(t, businesses, 3)

	methods := map[string]bool{}
	for _, b := range businesses {
		assert.Equal(t, "Gastown", b.Neighborhood)
		assert.GreaterOrEqual(t, b.DiscountPercentage, 0)
		assert.LessOrEqual(t, b.DiscountPercentage, 100)
		methods[b.DiscountMethod] = true
	}
	assert.Len(t, methods, 3, "discount methods must be distinct")

	assert.Equal(t, models.Business{
		Name:               "Cafe Habitat",
		Type:               models.Restaurant,
		Neighborhood:       "Gastown",
		DiscountHours:      "2PM - 4PM",
		DiscountPercentage: 50,
		DiscountMethod:     "Special menu for Habitat users",
	}, businesses[0])
}

func TestSelectNeighborhood_Regenerated(t *testing.T) {
	r := NewResolver(StaticCatalog{})

	first, err := r.SelectNeighborhood(context.Background(), "Downtown")
	require.NoError(t, err)
	second, err := r.SelectNeighborhood(context.Background(), "Kitsilano")
	require.NoError(t, err)

	assert.Len(t, second, 3)
	assert.Equal(t, "Downtown", first[0].Neighborhood)
	assert.Equal(t, "Kitsilano", second[0].Neighborhood)
}

func TestSelectNeighborhood_Empty(t *testing.T) {
	_, err := NewResolver(StaticCatalog{}).SelectNeighborhood(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyNeighborhood)
}

type leakyCatalog struct {
	StaticCatalog
	err error
}

func (c leakyCatalog) Businesses(ctx context.Context, neighborhood string) ([]models.Business, error) {
	if c.err != nil {
		return nil, c.err
	}
	all, _ := c.StaticCatalog.Businesses(ctx, neighborhood)
	return append(all, models.Business{Name: "Elsewhere", Neighborhood: "Surrey"}), nil
}

func TestSelectNeighborhood_FiltersForeignEntries(t *testing.T) {
	businesses, err := NewResolver(leakyCatalog{}).SelectNeighborhood(context.Background(), "West End")
	require.NoError(t, err)
	assert.Len(t, businesses, 3)
}

func TestSelectNeighborhood_CatalogError(t *testing.T) {
	boom := errors.New("backend down")
	_, err := NewResolver(leakyCatalog{err: boom}).SelectNeighborhood(context.Background(), "West End")
	assert.ErrorIs(t, err, boom)
}

func TestNeighborhoods(t *testing.T) {
	names, err := NewResolver(StaticCatalog{}).Neighborhoods(context.Background(), "Vancouver")
	require.NoError(t, err)
	assert.Equal(t, []string{"Downtown", "West End", "Kitsilano", "Mount Pleasant", "Gastown"}, names)

	names[0] = "Uptown"
	assert.Equal(t, "Downtown", DemoNeighborhoods[0])
}
