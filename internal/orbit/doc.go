// Package orbit provides the core data model for orbit integration.
//
// The package defines the types shared by the numerical kernels:
//
//   - [Phase]: one orbit's phase-space point (positions then velocities)
//   - [Batch]: a contiguous block of orbits integrated in lockstep
//   - [Tolerances]: absolute/relative error targets for one run
//   - [Trajectory]: the sampled output of one integration call
//   - [LyapunovSeries]: running largest-Lyapunov-exponent estimates
//
// # Lockstep batching
//
// All orbits in a [Batch] share one time and one step size per call.
// The most restrictive orbit controls the step for the whole batch, so
// every orbit is sampled on the same output time grid and an easy orbit
// does the same work as the hardest one in its batch.
//
// # Thread safety
//
// Values here are plain data. A batch is owned exclusively by the call
// integrating it; independent calls on independent batches may run
// fully in parallel.
package orbit
