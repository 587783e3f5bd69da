package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeDowntime(t *testing.T) {
	tests := []struct {
		reason   string
		category string
	}{
		{"Hydraulic leak", CategoryMechanical},
		{"Machine breakdown", CategoryMechanical},
		{"Power failure", CategoryElectrical},
		{"Tool change", CategoryTooling},
		{"Insert wear", CategoryTooling},
		{"Raw material not available", CategoryMaterial},
		{"Waiting for inspection", CategoryQuality},
		{"Preventive maintenance", CategoryPlanned},
		{"Lunch break", CategoryPlanned},
		{"Operator absent", CategoryManpower},
		{"SETUP change", CategoryPlanned},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.category, CategorizeDowntime(tt.reason), "reason %q", tt.reason)
	}
}

func TestCategorizeDowntime_UnknownFallsToOther(t *testing.T) {
	assert.Equal(t, CategoryOther, CategorizeDowntime("act of god"))
	assert.Equal(t, CategoryOther, CategorizeDowntime(""))
	assert.Equal(t, CategoryOther, CategorizeDowntime("   "))
}
