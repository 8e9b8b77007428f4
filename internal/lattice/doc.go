// Package lattice implements a damped mass-spring network advanced with
// semi-implicit Euler integration.
//
// The package defines the simulation core:
//
//   - [Mass]: point body with a bounded force accumulator
//   - [Spring]: damped linear constraint between two masses
//   - [System]: bounded owner of all masses and springs
//   - [BuildGrid]: rectangular lattice constructor with a pinned top row
//   - [Stepper]: one-tick orchestrator (forces, integration, reset, wind)
//
// All capacities and ambient forces come from a [Config] value supplied at
// construction, so independently tuned systems can coexist. Springs address
// masses by index into the System's store; indices are invalidated only by
// [System.Clear] or a rebuild, never by adding masses or springs.
//
// # Failure Model
//
// Mutations that would exceed a declared capacity are dropped and reported
// through sentinel errors ([ErrMassCapacity], [ErrSpringCapacity],
// [ErrForceCapacity]). No rejection is fatal: the system remains consistent
// and steppable afterwards.
//
// # Thread Safety
//
// A System is confined to a single goroutine. A tick runs to completion
// before any state is read for rendering or metrics.
package lattice
