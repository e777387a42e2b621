package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCondition(t *testing.T) {
	tests := []struct {
		label string
		want  Condition
	}{
		{"Clear", ConditionClear},
		{"Clouds", ConditionClouds},
		{"RAIN", ConditionRain},
		{" snow ", ConditionSnow},
		{"Drizzle", ConditionOther},
		{"Mist", ConditionOther},
		{"", ConditionOther},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCondition(tt.label))
		})
	}
}

func TestUnitFor(t *testing.T) {
	assert.Equal(t, Metric, UnitFor(true))
	assert.Equal(t, Imperial, UnitFor(false))
	assert.True(t, Metric.Valid())
	assert.False(t, UnitSystem("kelvin").Valid())
}
