package chart_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/covid-monitor/chart"
)

func TestPaletteByPosition(t *testing.T) {
	p := chart.NewPalette([]string{"China", "Italy", "Spain"})

	assert.Equal(t, "#1f77b4", p.Color("China"))
	assert.Equal(t, "#aec7e8", p.Color("Italy"))
	assert.Equal(t, "#ff7f0e", p.Color("Spain"))
	assert.Equal(t, "#000000", p.Color("Narnia"))
	assert.Equal(t, []string{"China", "Italy", "Spain"}, p.Keys())
}

func TestPaletteCycle(t *testing.T) {
	keys := make([]string, 0, 25)
	for i := 0; i < 25; i++ {
		keys = append(keys, fmt.Sprintf("country %d", i))
	}

	p := chart.NewPalette(keys)
	assert.Equal(t, p.Color("country 0"), p.Color("country 20"))
	assert.Equal(t, p.Color("country 4"), p.Color("country 24"))
	assert.NotEqual(t, p.Color("country 0"), p.Color("country 1"))
}

func TestPaletteDuplicateKeys(t *testing.T) {
	p := chart.NewPalette([]string{"China", "China", "Italy"})
	assert.Equal(t, "#aec7e8", p.Color("Italy"))
	assert.Len(t, p.Keys(), 2)
}
