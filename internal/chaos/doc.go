// Package chaos estimates the largest Lyapunov exponent of an orbit by
// the shadow-trajectory method: a companion orbit offset by a small d0
// is integrated in lockstep with the reference, the separation is
// renormalized back to d0 at a fixed cadence, and the accumulated log
// growth divided by elapsed time converges to the exponent. A positive
// limit indicates chaos; regular orbits decay toward zero.
package chaos
