// Package metadata binds source models into entity metadata.
//
// A Builder accepts mapping documents and annotation indexes, in any mix.
// Build runs two passes. The first registers every entity and the
// relational values of every attribute. The second resolves the target
// columns of each association, either the target's identifier or the
// columns picked by the association's JoinColumnResolutionDelegate.
package metadata
