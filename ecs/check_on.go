//go:build ecscheck

package ecs

// checkEnabled gates the InvalidEntity and MissingComponent verifications.
// Build with -tags ecscheck to fail fast at the violating call site; without
// the tag the branches below compile to nothing and the hot path is
// unchecked by contract.
const checkEnabled = true
