package scenario

import (
	"math/rand/v2"
	"slices"
)

// GenerateConfig shapes a random fixture.
type GenerateConfig struct {
	Dimensions    int
	Actions       int
	MaxCoordinate int64
	MaxRadius     float64
	MaxLimit      int
	// RemoveRate is the probability that an action removes a stored point
	// instead of adding a new one.
	RemoveRate float64
}

// DefaultGenerateConfig returns a small 2-D configuration.
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Dimensions:    2,
		Actions:       200,
		MaxCoordinate: 100,
		MaxRadius:     20,
		MaxLimit:      10,
		RemoveRate:    0.3,
	}
}

// Generate builds a random fixture. Added points are distinct from every
// point stored at that moment, and removals only target stored points.
func Generate(name string, cfg GenerateConfig, r *rand.Rand) *Fixture {
	randomCoords := func() []int64 {
		c := make([]int64, cfg.Dimensions)
		for i := range c {
			c[i] = r.Int64N(cfg.MaxCoordinate)
		}
		return c
	}

	fx := &Fixture{Name: name, Dimensions: cfg.Dimensions}
	stored := make(map[Point]struct{})
	var order [][]int64

	// freshCoords gives up on crowded grids so that Generate always ends.
	freshCoords := func() ([]int64, bool) {
		for range 64 {
			c := randomCoords()
			if _, dup := stored[NewPoint(c...)]; !dup {
				return c, true
			}
		}
		return nil, false
	}

	for range cfg.Actions {
		a := Action{
			Query:  randomCoords(),
			Radius: r.Float64() * cfg.MaxRadius,
			Limit:  r.IntN(cfg.MaxLimit + 1),
		}

		data, fresh := freshCoords()
		if len(order) > 0 && (!fresh || r.Float64() < cfg.RemoveRate) {
			i := r.IntN(len(order))
			a.Cmd, a.Data = CmdRemove, order[i]
			delete(stored, NewPoint(order[i]...))
			order = slices.Delete(order, i, i+1)
		} else {
			a.Cmd, a.Data = CmdAdd, data
			stored[NewPoint(data...)] = struct{}{}
			order = append(order, data)
		}

		fx.Actions = append(fx.Actions, a)
	}
	return fx
}
