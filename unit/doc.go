// Package unit defines the capability contract for independently authored
// tool units hosted by Toolrack.
//
// The package is intentionally split by concern:
//   - manifest: the declarative unit definition file schema and its defaults
//   - runner: the invocation interface and its native/exec adapters
//   - handlers: the init-time handler registry keyed by identifier
//   - load errors: the non-fatal failure records produced while resolving
//     a candidate definition into a unit
//
// The host treats every unit as opaque: the only capability it relies on is
// a single invokable entry point. What a unit does with its cycle is the
// unit's own business.
package unit
