package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Population 2024 (people)", DisplayName("POP_2024"))
	assert.Equal(t, "Jobs (jobs)", DisplayName("Emp 2024"))

	// Unknown columns fall back to title case
	assert.Equal(t, "Total Area", DisplayName("TOTAL_AREA"))
	assert.Equal(t, "Retail Floorspace", DisplayName("retail_floorspace"))
}

func TestFormatAttributeValue(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
		{1234.6, "1,235"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAttributeValue(tt.value), "value=%v", tt.value)
	}
}
