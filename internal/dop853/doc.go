// Package dop853 implements an adaptive Dormand-Prince 8(5,3)
// integrator for batches of orbits under a force field.
//
// The [Driver] owns the outer loop: it repeatedly takes trial steps,
// accepts or rejects them against the per-orbit error norm, and lands
// exactly on each requested sample time. All orbits in a batch advance
// in lockstep with a shared step size; the most restrictive orbit
// governs the batch (see the orbit package docs).
//
// The error estimate combines an embedded order-5 and order-3 solution
// in the classical weighted form, and the derivative evaluated at an
// accepted point is reused as the first stage of the following step,
// saving one force-model call per accepted step.
//
// Integration is synchronous and single-threaded per call. The only
// cooperative point is the context check at every step boundary, which
// aborts with the partial trajectory and orbit.ErrCancelled.
package dop853
