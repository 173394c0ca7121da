package experiment

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/nkotak/gridflow/internal/field"
	"github.com/nkotak/gridflow/internal/grid"
)

// InitialField builds the named starting condition for a run. Names:
//
//	flat    - zero everywhere
//	ramp    - linear ramp rising eastward
//	scarp   - step across the middle column (a fault scarp profile)
//	bump    - gaussian mound at the grid center
//	hot     - fixed hot center value on a cold field
//	noise   - uniform random roughness, reproducible from seed
func InitialField(g *grid.Raster, name string, amplitude float64, seed int64) ([]float64, error) {
	z := field.NewNodeField(g, name)

	switch name {
	case "flat":
		// zero value
	case "ramp":
		xMax := float64(g.Cols()-1) * g.Dx()
		z.SetFromFunc(func(x, y float64) float64 {
			return amplitude * x / xMax
		})
	case "scarp":
		xMid := float64(g.Cols()-1) * g.Dx() / 2
		z.SetFromFunc(func(x, y float64) float64 {
			if x > xMid {
				return amplitude
			}
			return 0
		})
	case "bump":
		cx := float64(g.Cols()-1) * g.Dx() / 2
		cy := float64(g.Rows()-1) * g.Dy() / 2
		sigma := math.Min(cx, cy) / 2
		z.SetFromFunc(func(x, y float64) float64 {
			d2 := (x-cx)*(x-cx) + (y-cy)*(y-cy)
			return amplitude * math.Exp(-d2/(2*sigma*sigma))
		})
	case "hot":
		center := g.NodeAt(g.Rows()/2, g.Cols()/2)
		z.Values[center] = amplitude
	case "noise":
		rng := rand.New(rand.NewSource(seed))
		for n := range z.Values {
			z.Values[n] = amplitude * rng.Float64()
		}
	default:
		return nil, fmt.Errorf("unknown initial condition: %s", name)
	}

	return z.Values, nil
}
