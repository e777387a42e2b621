// Package suggest turns raw search input into city suggestions.
package suggest

import (
	"context"
	"unicode/utf8"
)

// MinQueryLength is the longest input that still yields no suggestions
const MinQueryLength = 2

// Source supplies city suggestions for a query
type Source interface {
	Suggest(ctx context.Context, query string) []string
}

// DemoCities is the fixed suggestion list served by StaticSource
var DemoCities = []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix"}

// StaticSource returns DemoCities for every query
type StaticSource struct{}

func (StaticSource) Suggest(context.Context, string) []string {
	return append([]string(nil), DemoCities...)
}

// Suggestions is the dropdown state for one input value
type Suggestions struct {
	Items []string `json:"items"`
	Show  bool     `json:"show"`
}

// Normalizer derives dropdown state from input
type Normalizer struct {
	source Source
}

// NewNormalizer creates a Normalizer backed by source
func NewNormalizer(source Source) *Normalizer {
	return &Normalizer{source: source}
}

// OnInputChange computes the suggestions for raw. Inputs of MinQueryLength
// characters or fewer hide the dropdown.
func (n *Normalizer) OnInputChange(ctx context.Context, raw string) Suggestions {
	if utf8.RuneCountInString(raw) <= MinQueryLength {
		return Suggestions{Items: []string{}}
	}

	items := n.source.Suggest(ctx, raw)
	if items == nil {
		items = []string{}
	}
	return Suggestions{Items: items, Show: len(items) > 0}
}
