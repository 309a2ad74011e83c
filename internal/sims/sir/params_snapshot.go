package sir

import "sir-ca/internal/core"

// Parameters reports the active configuration for display.
func (e *Epidemic) Parameters() core.ParameterSnapshot {
	return e.cfg.Parameters()
}

// Parameters groups the configuration values for display.
func (c Config) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				core.IntParam("l", "Size", c.Size),
				core.StringParam("boundary", "Boundary", c.Params.Boundary.String()),
				core.Int64Param("seed", "Seed", c.Seed),
			},
		},
		{
			Name: "Epidemic",
			Params: []core.Parameter{
				core.FloatParam("beta", "Infection probability", c.Params.Beta),
				core.FloatParam("gamma", "Recovery probability", c.Params.Gamma),
				core.IntParam("max_steps", "Step horizon", c.Params.MaxSteps),
			},
		},
	}}
}
