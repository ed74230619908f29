// Package sim provides the fixed-step simulation engine for first-order ODE
// systems.
//
// The package defines the fundamental types for time-domain integration:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dx/dt = f(x, t))
//   - [Integrator]: numerical stepping interface
//   - [Simulator]: orchestrates one run and produces a [Result]
//
// # Example
//
//	model, _ := ecology.NewLotkaVolterra(params)
//	s := sim.New(model, integrators.NewRK4())
//	result, _ := s.Run(ctx, sim.State{10, 5}, sim.DefaultConfig())
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe; integrators carry scratch
// buffers. For concurrent runs use [Sweep], which gives each run its own
// simulator and integrator.
package sim
