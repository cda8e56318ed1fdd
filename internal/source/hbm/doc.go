// Package hbm implements the source model on top of mapping documents.
//
// Each document element kind has one implementation: the identifier,
// properties, many-to-one associations, components, and sets, bags and lists.
// Constructors interpret every raw selector and cascade directive up front.
// An invalid directive fails construction with a *source.MappingError. The
// returned objects only project already computed state.
package hbm
