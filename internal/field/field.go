package field

import (
	"math"

	"github.com/nkotak/gridflow/internal/grid"
)

// NodeField holds one scalar value per grid node.
type NodeField struct {
	Name   string
	Values []float64
	g      *grid.Raster
}

// LinkField holds one scalar value per grid link.
type LinkField struct {
	Name   string
	Values []float64
	g      *grid.Raster
}

// NewNodeField allocates a zeroed node field bound to g.
func NewNodeField(g *grid.Raster, name string) *NodeField {
	return &NodeField{Name: name, Values: make([]float64, g.NodeCount()), g: g}
}

// NewLinkField allocates a zeroed link field bound to g.
func NewLinkField(g *grid.Raster, name string) *LinkField {
	return &LinkField{Name: name, Values: make([]float64, g.LinkCount()), g: g}
}

// Grid returns the grid a field is bound to.
func (f *NodeField) Grid() *grid.Raster { return f.g }
func (f *LinkField) Grid() *grid.Raster { return f.g }

// Fill sets every value to v.
func (f *NodeField) Fill(v float64) {
	for i := range f.Values {
		f.Values[i] = v
	}
}

// SetFromFunc assigns each node the value of fn at its coordinates.
func (f *NodeField) SetFromFunc(fn func(x, y float64) float64) {
	for n := range f.Values {
		f.Values[n] = fn(f.g.X(n), f.g.Y(n))
	}
}

// Clone returns an independent copy of the field.
func (f *NodeField) Clone() *NodeField {
	c := NewNodeField(f.g, f.Name)
	copy(c.Values, f.Values)
	return c
}

// MinMax returns the smallest and largest values in the field.
func (f *NodeField) MinMax() (min, max float64) {
	return minMax(f.Values)
}

// MinMax returns the smallest and largest values in the field.
func (f *LinkField) MinMax() (min, max float64) {
	return minMax(f.Values)
}

func minMax(vals []float64) (min, max float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	min, max = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// IsValid reports whether a value slice is free of NaN and Inf.
func IsValid(vals []float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
