// Package force provides force-model implementations for orbit
// integration.
//
// Each model implements the [Field] interface, mapping a batch of
// positions to accelerations:
//
//   - [Kepler]: inverse-square point mass
//   - [Harmonic]: isotropic oscillator (non-chaotic reference)
//   - [Hernquist]: Hernquist spheroid
//   - [Plummer]: softened point mass
//   - [LogHalo]: triaxial logarithmic halo
//   - [HenonHeiles]: the classic 2D chaos test bed
//
// Models with a scalar potential also implement [PotentialEnergy],
// which the driver uses for energy-drift reporting and which tests use
// to check conserved quantities.
package force
