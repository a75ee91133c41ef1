// Package runtime provides the runtime representation of compiled schemas:
// types, the type registry, model definitions, and model instances.
//
// A compilation produces a sealed ModelSet. Models in a sealed set can be
// instantiated with New and validated with Validate from any goroutine;
// the set is immutable once sealed. The build-side API (Declare, SetFields,
// Seal) is not safe for concurrent use and is normally driven by the gem
// compiler rather than called directly.
package runtime
