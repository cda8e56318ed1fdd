package metadata

import (
	"github.com/twtxwydavid/hibernate-orm/internal/relational"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// Optional capabilities of plural sources.
type (
	indexedPlural interface {
		IndexValueSources() []source.RelationalValueSource
		IndexBase() int
	}
	keyTargetedPlural interface {
		KeyTargetResolutionDelegate() source.JoinColumnResolutionDelegate
	}
	elementTargetedPlural interface {
		ElementTargetResolutionDelegate() source.JoinColumnResolutionDelegate
	}
	filteredPlural interface {
		FilterSources() []source.FilterSource
	}
	generatedIdentifier interface {
		Generator() string
	}
)

// bindEntity registers the relational values of every attribute of state
// and queues its associations for the second pass.
func (bd *binder) bindEntity(state *entityState) error {
	e := state.source

	state.binding = &EntityBinding{
		Name:   e.EntityName(),
		Class:  e.ClassName(),
		Table:  e.PrimaryTableName(),
		Origin: e.Origin().String(),
	}

	state.tables = map[string]struct{}{e.PrimaryTableName(): {}}

	id, err := bd.bindAttribute(state, "", e.IdentifierSource())
	if err != nil {
		return err
	}

	if g, ok := e.IdentifierSource().(generatedIdentifier); ok {
		id.Generator = g.Generator()
	}

	state.binding.Identifier = id

	err = bd.bindSecondaryTables(state)
	if err != nil {
		return err
	}

	for _, attr := range e.AttributeSources() {
		binding, err := bd.bindAttribute(state, "", attr)
		if err != nil {
			return err
		}

		state.binding.Attributes = append(state.binding.Attributes, binding)
	}

	filters, err := bd.filters(state, e.EntityName(), e.FilterSources())
	if err != nil {
		return err
	}

	state.binding.Filters = filters

	return nil
}

// bindSecondaryTables records the tables joined to the primary table and
// queues their keys, which reference the identifier, for the second pass.
func (bd *binder) bindSecondaryTables(state *entityState) error {
	e := state.source

	for _, st := range e.SecondaryTableSources() {
		table := st.TableName()
		if _, dup := state.tables[table]; dup {
			return source.NewMappingError(e.Origin(), "Table '%s' is mapped twice by entity '%s'", table, state.name())
		}

		state.tables[table] = struct{}{}

		key := relationalValues(st.KeyValueSources())
		if len(key) == 0 {
			key = keyColumns(state.identifierValues(), table)
		}

		index := len(state.binding.SecondaryTables)
		state.binding.SecondaryTables = append(state.binding.SecondaryTables, SecondaryTableBinding{
			Table:      table,
			Key:        valueBindings(key),
			ForeignKey: st.ForeignKeyName(),
			Optional:   st.IsOptional(),
			Inverse:    st.IsInverse(),
		})

		bd.pending = append(bd.pending, pendingJoin{
			owner:      state,
			path:       state.name() + "[" + table + "]",
			target:     state,
			foreignKey: key,
			assign: func(columns []string) {
				state.binding.SecondaryTables[index].KeyTarget = columns
			},
		})
	}

	return nil
}

// keyColumns copies the identifier columns into table.
func keyColumns(identifier []relational.Value, table string) []relational.Value {
	key := make([]relational.Value, 0, len(identifier))

	for _, v := range identifier {
		if col, ok := v.(*relational.Column); ok {
			key = append(key, &relational.Column{TableName: table, Name: col.Name, SQLType: col.SQLType, Length: col.Length})
		}
	}

	return key
}

// bindAttribute binds attr declared under prefix ("" for top-level
// attributes, "address." inside a component).
func (bd *binder) bindAttribute(state *entityState, prefix string, attr source.AttributeSource) (AttributeBinding, error) {
	key := prefix + attr.Name()
	path := state.name() + "." + key

	switch a := attr.(type) {
	case source.ToOneAttributeSource:
		return bd.bindToOne(state, key, path, a)
	case source.ComponentAttributeSource:
		return bd.bindComponent(state, key, a)
	case source.PluralAttributeSource:
		return bd.bindPlural(state, key, path, a)
	case source.SingularAttributeSource:
		values := relationalValues(a.RelationalValueSources())
		if err := state.checkTables(path, values); err != nil {
			return AttributeBinding{}, err
		}

		state.register(key, values)

		return singularBinding(a, values), nil
	default:
		return AttributeBinding{}, source.NewMappingError(state.source.Origin(),
			"Attribute '%s' has an unsupported nature %s", path, attr.Nature())
	}
}

func (bd *binder) bindToOne(state *entityState, key, path string, a source.ToOneAttributeSource) (AttributeBinding, error) {
	target, err := bd.target(state, path, a.ReferencedEntityName())
	if err != nil {
		return AttributeBinding{}, err
	}

	values := relationalValues(a.RelationalValueSources())
	if err := state.checkTables(path, values); err != nil {
		return AttributeBinding{}, err
	}

	state.register(key, values)

	binding := singularBinding(a, values)
	binding.FetchTiming = a.FetchTiming().String()
	binding.FetchStyle = a.FetchStyle().String()
	binding.FetchMode = a.FetchMode().String()
	binding.Cascade = a.CascadeStyles().Names()
	binding.Target = target.name()
	binding.ForeignKey = a.ExplicitForeignKeyName()

	delegate := a.ForeignKeyTargetColumnResolutionDelegate()
	if delegate != nil {
		binding.PropertyRef = delegate.ReferencedAttributeName()
	}

	// The binding is copied into its parent; assign through the entity so
	// the resolved columns land in the stored copy.
	bd.pending = append(bd.pending, pendingJoin{
		owner:      state,
		path:       path,
		target:     target,
		delegate:   delegate,
		foreignKey: values,
		assign: func(columns []string) {
			if b := state.attributeBinding(key); b != nil {
				b.JoinColumns = columns
			}
		},
	})

	return binding, nil
}

func (bd *binder) bindComponent(state *entityState, key string, a source.ComponentAttributeSource) (AttributeBinding, error) {
	var (
		nested []AttributeBinding
		values []relational.Value
	)

	for _, attr := range a.AttributeSources() {
		binding, err := bd.bindAttribute(state, key+".", attr)
		if err != nil {
			return AttributeBinding{}, err
		}

		nested = append(nested, binding)
		values = append(values, state.values[key+"."+attr.Name()]...)
	}

	state.register(key, values)

	binding := singularBinding(a, values)
	binding.Type = a.ComponentClassName()
	binding.Attributes = nested

	return binding, nil
}

func (bd *binder) bindPlural(state *entityState, key, path string, a source.PluralAttributeSource) (AttributeBinding, error) {
	binding := AttributeBinding{
		Name:           a.Name(),
		Nature:         a.Nature().String(),
		Accessor:       a.PropertyAccessorName(),
		Type:           a.TypeInformation().Name,
		Lazy:           a.FetchTiming() != source.FetchImmediate,
		Nullable:       true,
		Insert:         !a.IsInverse(),
		Update:         !a.IsInverse(),
		OptimisticLock: a.IsIncludedInOptimisticLocking(),
		FetchTiming:    a.FetchTiming().String(),
		FetchStyle:     a.FetchStyle().String(),
		Cascade:        a.CascadeStyles().Names(),
	}

	collection := &CollectionBinding{
		Nature:      a.PluralNature().String(),
		Element:     a.ElementNature().String(),
		Table:       a.CollectionTableName(),
		ElementType: a.ElementTypeInformation().Name,
		Inverse:     a.IsInverse(),
		BatchSize:   a.BatchSize(),
		Where:       a.Where(),
		OrderBy:     a.OrderBy(),
	}

	var elementTarget *entityState

	if a.ElementNature() != source.ElementBasic {
		target, err := bd.target(state, path, a.ReferencedEntityName())
		if err != nil {
			return AttributeBinding{}, err
		}

		elementTarget = target
		binding.Target = target.name()
	}

	// One-to-many keys live in the element entity's table.
	if a.ElementNature() == source.ElementOneToMany {
		collection.Table = elementTarget.source.PrimaryTableName()
	}

	keyValues := withTable(relationalValues(a.KeyValueSources()), collection.Table)
	elementValues := withTable(relationalValues(a.ElementValueSources()), collection.Table)
	collection.Key = valueBindings(keyValues)
	collection.Elements = valueBindings(elementValues)

	if indexed, ok := a.(indexedPlural); ok {
		collection.Index = valueBindings(withTable(relationalValues(indexed.IndexValueSources()), collection.Table))
		collection.IndexBase = indexed.IndexBase()
	}

	if filtered, ok := a.(filteredPlural); ok {
		filters, err := bd.filters(state, path, filtered.FilterSources())
		if err != nil {
			return AttributeBinding{}, err
		}

		collection.Filters = filters
	}

	binding.Collection = collection

	var keyDelegate source.JoinColumnResolutionDelegate
	if keyed, ok := a.(keyTargetedPlural); ok {
		keyDelegate = keyed.KeyTargetResolutionDelegate()
	}

	bd.pending = append(bd.pending, pendingJoin{
		owner:      state,
		path:       path + ".key",
		target:     state,
		delegate:   keyDelegate,
		foreignKey: keyValues,
		assign: func(columns []string) {
			if b := state.attributeBinding(key); b != nil {
				b.Collection.KeyTarget = columns
			}
		},
	})

	if a.ElementNature() == source.ElementManyToMany {
		var elementDelegate source.JoinColumnResolutionDelegate
		if targeted, ok := a.(elementTargetedPlural); ok {
			elementDelegate = targeted.ElementTargetResolutionDelegate()
		}

		bd.pending = append(bd.pending, pendingJoin{
			owner:      state,
			path:       path + ".element",
			target:     elementTarget,
			delegate:   elementDelegate,
			foreignKey: elementValues,
			assign: func(columns []string) {
				if b := state.attributeBinding(key); b != nil {
					b.Collection.ElementTarget = columns
				}
			},
		})
	}

	return binding, nil
}

// attributeBinding finds the stored binding at key, descending into
// components for dotted keys.
func (s *entityState) attributeBinding(key string) *AttributeBinding {
	return findBinding(s.binding.Attributes, key)
}

func findBinding(bindings []AttributeBinding, key string) *AttributeBinding {
	for i := range bindings {
		b := &bindings[i]
		if b.Name == key {
			return b
		}

		if prefix := b.Name + "."; len(key) > len(prefix) && key[:len(prefix)] == prefix {
			if nested := findBinding(b.Attributes, key[len(prefix):]); nested != nil {
				return nested
			}
		}
	}

	return nil
}

func singularBinding(a source.SingularAttributeSource, values []relational.Value) AttributeBinding {
	b := AttributeBinding{
		Name:           a.Name(),
		Nature:         a.Nature().String(),
		Accessor:       a.PropertyAccessorName(),
		Type:           a.TypeInformation().Name,
		Lazy:           a.IsLazy(),
		Virtual:        a.IsVirtualAttribute(),
		Nullable:       a.AreValuesNullableByDefault(),
		Insert:         a.AreValuesIncludedInInsertByDefault(),
		Update:         a.AreValuesIncludedInUpdateByDefault(),
		OptimisticLock: a.IsIncludedInOptimisticLocking(),
		Values:         valueBindings(values),
	}

	if m := a.NaturalIDMutability(); m != source.NotNaturalID {
		b.NaturalID = m.String()
	}

	if g := a.Generation(); g != source.GenerationNever {
		b.Generation = g.String()
	}

	return b
}

// relationalValues converts value sources to relational values, in order.
func relationalValues(sources []source.RelationalValueSource) []relational.Value {
	values := make([]relational.Value, 0, len(sources))

	for _, vs := range sources {
		switch v := vs.(type) {
		case source.ColumnSource:
			values = append(values, &relational.Column{
				TableName:    v.ContainingTableName(),
				Name:         v.Name(),
				SQLType:      v.SQLType(),
				Length:       v.Length(),
				Nullable:     v.IsNullable(),
				Unique:       v.IsUnique(),
				DefaultValue: v.DefaultValue(),
				CheckClause:  v.CheckCondition(),
			})
		case source.DerivedValueSource:
			values = append(values, &relational.DerivedValue{
				TableName:  v.ContainingTableName(),
				Expression: v.Expression(),
			})
		}
	}

	return values
}

// withTable fills in the table of values declared without one.
func withTable(values []relational.Value, table string) []relational.Value {
	for _, v := range values {
		switch rv := v.(type) {
		case *relational.Column:
			if rv.TableName == "" {
				rv.TableName = table
			}
		case *relational.DerivedValue:
			if rv.TableName == "" {
				rv.TableName = table
			}
		}
	}

	return values
}

func valueBindings(values []relational.Value) []ValueBinding {
	if len(values) == 0 {
		return nil
	}

	out := make([]ValueBinding, 0, len(values))

	for _, v := range values {
		switch rv := v.(type) {
		case *relational.Column:
			out = append(out, ValueBinding{
				Table:    rv.TableName,
				Column:   rv.Name,
				SQLType:  rv.SQLType,
				Length:   rv.Length,
				Nullable: rv.Nullable,
				Unique:   rv.Unique,
				Default:  rv.DefaultValue,
				Check:    rv.CheckClause,
			})
		case *relational.DerivedValue:
			out = append(out, ValueBinding{Table: rv.TableName, Formula: rv.Expression})
		}
	}

	return out
}
