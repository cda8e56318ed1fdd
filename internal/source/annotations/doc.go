// Package annotations implements the source model on top of annotated Go
// struct types read by package annotation.
//
// Supported annotations: Entity, Table, SecondaryTable, Filter, FilterDef
// and FilterDefs on types; Id, GeneratedValue, Column, ColumnDefault, Formula, Basic,
// Type, Generated, NaturalId, OptimisticLock, Access, Transient,
// ManyToOne, OneToOne, JoinColumn, JoinColumns, Fetch, LazyToOne, Cascade,
// ForeignKey and PropertyRef on fields. Collections and embedded values are
// mapped in documents; their annotations are rejected.
package annotations
