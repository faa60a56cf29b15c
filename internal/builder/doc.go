// Package builder maps curve-type tags to the builders that construct them.
//
// Each curve family implements the generic Typed contract, monomorphic in its
// own instrument, instructions and curve types. The registry only ever sees
// the type-erased Builder produced by Erase, which narrows the family-agnostic
// arguments to the family's concrete types before delegating.
//
// Lookup is an explicit presence check over a map keyed by curve.Type. An
// unregistered tag is always an *UnknownCurveTypeError; there is no fallback
// builder.
//
// Adding a curve family takes three steps:
//
//  1. a new curve.Type constant,
//  2. a type satisfying Typed for that family,
//  3. one entry in defaultBuilders.
//
// Builders and the registry never log. Construction errors from the curve
// package pass through unchanged.
package builder
