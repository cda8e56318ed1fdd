// Package source defines the source model: the contracts every mapping input
// format is normalized into before binding.
//
// Two families of implementations exist:
//   - hbm: backed by mapping-document elements (internal/mapping)
//   - annotations: backed by annotation instances (internal/annotation)
//
// Both answer the same queries (fetch timing and style, cascade styles,
// relational value sources, nullability, optimistic locking, natural-id
// mutability), so the binder never sees which format an attribute came from.
//
// Construction is where every raw directive is interpreted. Source objects
// are immutable afterwards, except for JoinColumnResolutionDelegate which is
// resolved exactly once in the second binding pass.
package source
