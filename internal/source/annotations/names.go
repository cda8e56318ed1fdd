package annotations

import (
	"slices"

	"github.com/twtxwydavid/hibernate-orm/internal/annotation"
	"github.com/twtxwydavid/hibernate-orm/internal/match"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// Annotation names.
const (
	Entity         = "Entity"
	Table          = "Table"
	SecondaryTable = "SecondaryTable"
	Filter         = "Filter"
	FilterDef      = "FilterDef"
	FilterDefs     = "FilterDefs"
	ID             = "Id"
	GeneratedValue = "GeneratedValue"
	Column         = "Column"
	ColumnDefault  = "ColumnDefault"
	Formula        = "Formula"
	Basic          = "Basic"
	Type           = "Type"
	Generated      = "Generated"
	NaturalID      = "NaturalId"
	OptimisticLock = "OptimisticLock"
	Access         = "Access"
	Transient      = "Transient"
	ManyToOne      = "ManyToOne"
	OneToOne       = "OneToOne"
	JoinColumn     = "JoinColumn"
	JoinColumns    = "JoinColumns"
	Fetch          = "Fetch"
	LazyToOne      = "LazyToOne"
	Cascade        = "Cascade"
	ForeignKey     = "ForeignKey"
	PropertyRef    = "PropertyRef"
)

var typeAnnotations = []string{Entity, Table, SecondaryTable, Filter, FilterDef, FilterDefs}

var fieldAnnotations = []string{
	ID, GeneratedValue, Column, ColumnDefault, Formula, Basic, Type, Generated, NaturalID,
	OptimisticLock, Access, Transient, ManyToOne, OneToOne, JoinColumn, JoinColumns, Fetch,
	LazyToOne, Cascade, ForeignKey, PropertyRef,
}

// documentOnly are recognized but must be mapped in a document.
var documentOnly = []string{"OneToMany", "ManyToMany", "ElementCollection", "Embedded", "EmbeddedId"}

// checkNames rejects annotations this package does not understand.
func checkNames(ctx source.BindingContext, instances []*annotation.Instance, known []string) error {
	for _, in := range instances {
		if slices.Contains(known, in.Name) {
			continue
		}

		if slices.Contains(documentOnly, in.Name) {
			return source.NewMappingError(ctx.Origin(),
				"%s on '%s' is not supported on annotated classes; map it in a mapping document", in.Name, in.Target)
		}

		err := source.NewMappingError(ctx.Origin(), "Unknown annotation %s on '%s' at %s", in.Name, in.Target, in.Pos)
		if hint := match.Closest(in.Name, known); hint != "" {
			err.Message += " (did you mean " + hint + "?)"
		}

		return err
	}

	return nil
}

func unexpectedValue(ctx source.BindingContext, in *annotation.Instance, key, value string, allowed []string) *source.MappingError {
	err := source.NewMappingError(ctx.Origin(), "Unexpected %s.%s value [%s] on '%s'", in.Name, key, value, in.Target)
	if hint := match.Closest(value, allowed); hint != "" {
		err.Message += " (did you mean " + hint + "?)"
	}

	return err
}
