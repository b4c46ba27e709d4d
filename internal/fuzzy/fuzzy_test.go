package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "PEPSI", b: "PEPSI", want: 100},
		{name: "both empty", a: "", b: "", want: 100},
		{name: "one empty", a: "PEPSI", b: "", want: 0},
		{name: "prefix", a: "ADREN", b: "ADRENALINE", want: 200.0 / 3},
		{name: "cyrillic counts runes", a: "ДОБРЫЙ", b: "ДОБРЫ", want: 1000.0 / 11},
		{name: "disjoint", a: "ABC", b: "XYZ", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Ratio(tt.a, tt.b), 0.001)
			assert.InDelta(t, tt.want, Ratio(tt.b, tt.a), 0.001)
		})
	}
}

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "substring", a: "ADREN", b: "ADRENALINE", want: 100},
		{name: "argument order irrelevant", a: "ADRENALINE", b: "ADREN", want: 100},
		{name: "edge window", a: "ABCD", b: "XXAB", want: 200.0 / 3},
		{name: "empty pair", a: "", b: "", want: 100},
		{name: "empty needle", a: "", b: "COLA", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PartialRatio(tt.a, tt.b), 0.001)
		})
	}
}

func TestTokenSortRatio(t *testing.T) {
	assert.InDelta(t, 100, TokenSortRatio("КОЛА ДОБРЫЙ", "ДОБРЫЙ КОЛА"), 0.001)
	assert.Less(t, Ratio("КОЛА ДОБРЫЙ", "ДОБРЫЙ КОЛА"), 100.0)
}

func TestBestTakesMaximum(t *testing.T) {
	assert.InDelta(t, 100, Best("ADREN", "ADRENALINE"), 0.001)
	assert.GreaterOrEqual(t, Best("ДОБРЫЙ", "ДОБРЫ"), Ratio("ДОБРЫЙ", "ДОБРЫ"))
	assert.InDelta(t, 100, Best("ДОБРЫ", "ДОБРЫЙ"), 0.001)
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"КОЛА", "0", "5Л", "ВЭЗН", "20"}, Words("КОЛА 0,5Л(ВЭЗН):20"))
	assert.Equal(t, []string{"COCA", "COLA"}, Words("COCA-COLA"))
	assert.Empty(t, Words(" ,.; "))
}
