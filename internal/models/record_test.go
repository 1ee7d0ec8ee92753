package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasPE(t *testing.T) {
	assert.True(t, (&SymbolRecord{PERatio: 28.5}).HasPE())
	assert.False(t, (&SymbolRecord{PERatio: 0}).HasPE())
	assert.False(t, (&SymbolRecord{PERatio: -3.2}).HasPE())
}

func TestFilterCriteriaNormalize(t *testing.T) {
	c := FilterCriteria{}
	c.Normalize()
	assert.InDelta(t, 5.0, c.MinVolumeRatio, 0.001)
	assert.Equal(t, 10, c.ResultCount)

	// Explicit values survive
	c = FilterCriteria{MinVolumeRatio: 2.0, ResultCount: 3}
	c.Normalize()
	assert.InDelta(t, 2.0, c.MinVolumeRatio, 0.001)
	assert.Equal(t, 3, c.ResultCount)

	c = FilterCriteria{MinVolumeRatio: -1, ResultCount: 0}
	c.Normalize()
	assert.InDelta(t, 5.0, c.MinVolumeRatio, 0.001)
	assert.Equal(t, 10, c.ResultCount)
}

func TestFilterCriteriaValidate(t *testing.T) {
	valid := FilterCriteria{PriceMin: 2, PriceMax: 20, FloatCeilingM: 10}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name     string
		criteria FilterCriteria
	}{
		{"negative price min", FilterCriteria{PriceMin: -1, PriceMax: 20}},
		{"negative price max", FilterCriteria{PriceMin: 0, PriceMax: -5}},
		{"inverted price band", FilterCriteria{PriceMin: 20, PriceMax: 2}},
		{"negative float ceiling", FilterCriteria{PriceMax: 20, FloatCeilingM: -1}},
		{"negative min volume", FilterCriteria{PriceMax: 20, MinVolume: -100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.criteria.Validate())
		})
	}
}

func TestUniverseSourceValid(t *testing.T) {
	for _, source := range UniverseSources {
		assert.True(t, source.Valid(), "source %s", source)
	}
	assert.False(t, UniverseSource("asx").Valid())
	assert.False(t, UniverseSource("").Valid())
	assert.False(t, UniverseSource("NASDAQ").Valid(), "selectors are lower-case")
}

func TestUniverseSize(t *testing.T) {
	u := &Universe{Symbols: []string{"AAPL", "MSFT"}}
	assert.Equal(t, 2, u.Size())
	assert.Equal(t, 0, (&Universe{}).Size())
}

func TestCatalystSetComplete(t *testing.T) {
	require.Len(t, Catalysts, 8)
	seen := make(map[Catalyst]bool)
	for _, c := range Catalysts {
		assert.NotEmpty(t, string(c))
		assert.False(t, seen[c], "duplicate tag %s", c)
		seen[c] = true
	}
}
