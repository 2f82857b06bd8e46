package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPalette_Assign_CyclesInOrder tests palette cycling over the id list
func TestPalette_Assign_CyclesInOrder(t *testing.T) {
	p := Palette{"red", "green", "blue"}

	ids := []string{"a", "b", "c", "d", "e"}
	colors := p.Assign(ids)

	require.Len(t, colors, 5)
	assert.Equal(t, "red", colors["a"])
	assert.Equal(t, "green", colors["b"])
	assert.Equal(t, "blue", colors["c"])
	assert.Equal(t, "red", colors["d"])
	assert.Equal(t, "green", colors["e"])
}

// TestPalette_Assign_ModuloLaw tests color(i) = palette[i mod P] for longer lists
func TestPalette_Assign_ModuloLaw(t *testing.T) {
	p := DefaultPalette()

	ids := make([]string, 37)
	for i := range ids {
		ids[i] = fmt.Sprintf("card-%d", i)
	}

	colors := p.Assign(ids)
	for i, id := range ids {
		assert.Equal(t, p[i%len(p)], colors[id], "id %s", id)
	}
}

// TestPalette_Assign_Idempotent tests re-assignment with the same ordered list
func TestPalette_Assign_Idempotent(t *testing.T) {
	p := DefaultPalette()
	ids := []string{"mc1", "mc2", "mc3"}

	first := p.Assign(ids)
	second := p.Assign(ids)

	assert.Equal(t, first, second)
}

// TestPalette_Assign_OrderDependent tests that assignment follows input order, not id value
func TestPalette_Assign_OrderDependent(t *testing.T) {
	p := Palette{"red", "green"}

	forward := p.Assign([]string{"x", "y"})
	reversed := p.Assign([]string{"y", "x"})

	assert.Equal(t, "red", forward["x"])
	assert.Equal(t, "red", reversed["y"])
	assert.NotEqual(t, forward["y"], reversed["y"])
}

// TestPalette_Assign_Empty tests empty palette and empty id list
func TestPalette_Assign_Empty(t *testing.T) {
	assert.Empty(t, Palette{}.Assign([]string{"a", "b"}))
	assert.Empty(t, DefaultPalette().Assign(nil))
}
