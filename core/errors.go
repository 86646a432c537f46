// SPDX-License-Identifier: MIT
// Package: swapnet/core
//
// errors.go — sentinel errors for the core package.
//
// Error policy (explicit and strict):
//   • Only sentinel variables (package-level) are exposed.
//   • Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   • Sentinels are NEVER wrapped with formatted strings at definition site.
//   • Implementations attach context using %w at the failure site.
//   • Construction errors are raised at object creation, never deferred;
//     decomposition errors indicate a bug in a decomposition rule and are
//     never retried.

package core

import "errors"

// ErrConstruction indicates malformed or out-of-domain parameters passed to
// a constructor: non-positive widths, dimensionality mismatches between
// selection axes and register-count axes, iteration lengths outside
// [1, 2^bitwidth], duplicate register names.
// Usage: if errors.Is(err, core.ErrConstruction) { /* reject parameters */ }.
var ErrConstruction = errors.New("core: invalid construction parameters")

// ErrDecomposition indicates an internal invariant violation discovered
// while expanding a bloq into children: wire-width mismatch, non-linear wire
// reuse, dangling ports at finalize. Always fatal; signals a bug in the
// decomposition rule that produced it.
var ErrDecomposition = errors.New("core: decomposition invariant violated")

// ErrAtomic indicates the bloq is a leaf primitive with no decomposition.
// Cost estimation treats such bloqs as ledger leaves.
var ErrAtomic = errors.New("core: bloq has no decomposition")

// ErrSymbolic indicates the bloq's parameters are symbolic, so no concrete
// wiring can be produced; costs remain available through Countable.
var ErrSymbolic = errors.New("core: symbolic parameters admit no concrete decomposition")
