package suggest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnInputChange_ShortQueries(t *testing.T) {
	n := NewNormalizer(StaticSource{})

	for _, raw := range []string{"", "N", "Ne", "  ", "Zü"} {
		got := n.OnInputChange(context.Background(), raw)
		assert.Empty(t, got.Items, "query %q", raw)
		assert.False(t, got.Show, "query %q", raw)
	}
}

func TestOnInputChange_DemoList(t *testing.T) {
	n := NewNormalizer(StaticSource{})

	got := n.OnInputChange(context.Background(), "New")
	assert.True(t, got.Show)
	assert.Equal(t, []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix"}, got.Items)

	// callers may not mutate the shared list
	got.Items[0] = "Gotham"
	assert.Equal(t, "New York", DemoCities[0])
}

type emptySource struct{}

func (emptySource) Suggest(context.Context, string) []string { return nil }

func TestOnInputChange_EmptySource(t *testing.T) {
	got := NewNormalizer(emptySource{}).OnInputChange(context.Background(), "Vancouver")
	assert.False(t, got.Show)
	assert.NotNil(t, got.Items)
}
