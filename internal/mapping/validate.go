package mapping

import (
	"fmt"
	"slices"

	"github.com/twtxwydavid/hibernate-orm/internal/common"
	"github.com/twtxwydavid/hibernate-orm/internal/diagnostic"
	"github.com/twtxwydavid/hibernate-orm/internal/match"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// Recognized selector values per element kind.
var (
	ManyToOneLazyValues   = []string{"false", "proxy", "true", "extra"}
	ManyToOneFetchValues  = []string{"join", "select"}
	OuterJoinValues       = []string{"true", "false", "auto"}
	CollectionLazyValues  = []string{"true", "false", "extra"}
	CollectionFetchValues = []string{"join", "select", "subselect"}
	GeneratedValues       = []string{"never", "insert", "always"}
)

// Validate checks a document for structural problems: missing names,
// duplicates, conflicting column/formula declarations and unrecognized
// selector or cascade values. It does not resolve cross-document references;
// a filter applied but not declared here is only a warning.
func Validate(doc *Document, origin string) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if doc == nil {
		res.AddError("document_is_nil", "mapping document is nil", origin, "")
		return res
	}

	v := &validator{res: res, origin: origin, filterDefs: map[string]struct{}{}}

	v.validateFilterDefs(doc.FilterDefs)
	v.validateCascade(doc.DefaultCascade, "")

	entities := map[string]struct{}{}

	for i := range doc.Classes {
		cls := &doc.Classes[i]
		if cls.Name == "" && cls.EntityName == "" {
			res.AddError("missing_class_name", fmt.Sprintf("class #%d declares neither name nor entity-name", i+1), origin, "")
			continue
		}

		entity := common.FirstNonEmpty(cls.EntityName, cls.Name)
		if _, dup := entities[entity]; dup {
			res.AddError("duplicate_entity", fmt.Sprintf("entity %q is mapped twice", entity), origin, entity)
		}

		entities[entity] = struct{}{}

		v.validateClass(entity, cls)
	}

	return res
}

type validator struct {
	res        *diagnostic.Diagnostics
	origin     string
	filterDefs map[string]struct{}
}

func (v *validator) validateFilterDefs(defs []FilterDefElement) {
	for _, fd := range defs {
		if fd.Name == "" {
			v.res.AddError("missing_filter_name", "filter-def must declare a name", v.origin, "")
			continue
		}

		if _, dup := v.filterDefs[fd.Name]; dup {
			v.res.AddError("duplicate_filter_def", fmt.Sprintf("duplicate filter-def %q", fd.Name), v.origin, fd.Name)
			continue
		}

		v.filterDefs[fd.Name] = struct{}{}

		params := map[string]struct{}{}

		for _, p := range fd.Parameters {
			if p.Name == "" || p.Type == "" {
				v.res.AddError("incomplete_filter_param",
					"filter parameter must declare name and type", v.origin, fd.Name)

				continue
			}

			if _, dup := params[p.Name]; dup {
				v.res.AddError("duplicate_filter_param",
					fmt.Sprintf("parameter %q declared twice", p.Name), v.origin, fd.Name)
			}

			params[p.Name] = struct{}{}
		}
	}
}

func (v *validator) validateClass(entity string, cls *ClassElement) {
	if cls.ID == nil {
		v.res.AddError("missing_id", "class must declare an id", v.origin, entity)
	} else if cls.ID.Column != "" && len(cls.ID.Columns) > 0 {
		v.res.AddError("column_conflict", "id declares both column and columns", v.origin, entity+"."+cls.ID.Name)
	}

	seen := map[string]struct{}{}
	if cls.ID != nil {
		seen[cls.ID.Name] = struct{}{}
	}

	if cls.NaturalID != nil {
		v.validateAttributes(entity, cls.NaturalID.Attributes, seen)
	}

	v.validateAttributes(entity, cls.Attributes, seen)

	tables := map[string]struct{}{}
	if cls.Table != "" {
		tables[cls.Table] = struct{}{}
	}

	for i := range cls.Joins {
		v.validateJoin(entity, &cls.Joins[i], tables, seen)
	}

	for _, f := range cls.Filters {
		v.validateFilter(entity, f)
	}
}

// validateJoin checks a secondary table. Its attribute names share the
// namespace of the class attributes.
func (v *validator) validateJoin(entity string, join *JoinElement, tables, seen map[string]struct{}) {
	if join.Table == "" {
		v.res.AddError("missing_join_table", "join must declare a table", v.origin, entity)
		return
	}

	path := entity + "[" + join.Table + "]"
	if _, dup := tables[join.Table]; dup {
		v.res.AddError("duplicate_join_table",
			fmt.Sprintf("table %q is already mapped by this class", join.Table), v.origin, path)
	}

	tables[join.Table] = struct{}{}

	if join.Key.Column == "" && len(join.Key.Columns) == 0 {
		v.res.AddError("missing_key", "join must declare a key column", v.origin, path)
	}

	for i := range join.Attributes {
		if attr := &join.Attributes[i]; attr.Set != nil || attr.Bag != nil || attr.List != nil {
			v.res.AddError("join_collection",
				fmt.Sprintf("collection %q cannot be mapped to a secondary table", attr.Name()), v.origin, path)
		}
	}

	v.validateAttributes(entity, join.Attributes, seen)
}

func (v *validator) validateFilter(path string, f FilterElement) {
	if f.Name == "" {
		v.res.AddError("missing_filter_name", "filter must declare a name", v.origin, path)
		return
	}

	if _, ok := v.filterDefs[f.Name]; !ok {
		v.res.AddWarning("undeclared_filter",
			fmt.Sprintf("filter %q is not declared in this document", f.Name), v.origin, path)
	}
}

func (v *validator) validateAttributes(owner string, attrs []AttributeElement, seen map[string]struct{}) {
	for i := range attrs {
		attr := &attrs[i]

		kinds := attr.kinds()
		if len(kinds) != 1 {
			v.res.AddError("attribute_kind",
				fmt.Sprintf("attribute #%d must declare exactly one of property, many-to-one, component, set, bag, list (got %d)", i+1, len(kinds)),
				v.origin, owner)

			continue
		}

		name := attr.Name()
		if name == "" {
			v.res.AddError("missing_attribute_name", fmt.Sprintf("%s #%d has no name", kinds[0], i+1), v.origin, owner)
			continue
		}

		path := owner + "." + name
		if _, dup := seen[name]; dup {
			v.res.AddError("duplicate_attribute", fmt.Sprintf("attribute %q is mapped twice", name), v.origin, path)
		}

		seen[name] = struct{}{}

		switch {
		case attr.Property != nil:
			v.validateValues(path, &attr.Property.ValueDeclaration)
			v.noteImplicitColumn(path, name, &attr.Property.ValueDeclaration)
			v.validateSelector(path, "generated", Selector(attr.Property.Generated), GeneratedValues)
		case attr.ManyToOne != nil:
			m := attr.ManyToOne
			if m.Class == "" && m.EntityName == "" {
				v.res.AddError("missing_target", "many-to-one must declare class or entity-name", v.origin, path)
			}

			v.validateValues(path, &m.ValueDeclaration)
			v.noteImplicitColumn(path, name, &m.ValueDeclaration)
			v.validateSelector(path, "lazy", m.Lazy, ManyToOneLazyValues)
			v.validateSelector(path, "fetch", m.Fetch, ManyToOneFetchValues)
			v.validateSelector(path, "outer-join", m.OuterJoin, OuterJoinValues)
			v.validateCascade(m.Cascade, path)
		case attr.Component != nil:
			v.validateAttributes(path, attr.Component.Attributes, map[string]struct{}{})
		default:
			v.validateCollection(path, common.FirstNonNil(attr.Set, attr.Bag, attr.List), attr.List != nil)
		}
	}
}

func (v *validator) validateCollection(path string, c *CollectionElement, isList bool) {
	v.validateSelector(path, "lazy", c.Lazy, CollectionLazyValues)
	v.validateSelector(path, "fetch", c.Fetch, CollectionFetchValues)
	v.validateSelector(path, "outer-join", c.OuterJoin, OuterJoinValues)
	v.validateCascade(c.Cascade, path)

	if c.Key.Column == "" && len(c.Key.Columns) == 0 {
		v.res.AddError("missing_key", "collection must declare a key column", v.origin, path)
	}

	if isList && c.Index == nil {
		v.res.AddError("missing_list_index", "list must declare a list-index", v.origin, path)
	}

	elements := 0

	if c.Element != nil {
		elements++

		v.validateValues(path, &c.Element.ValueDeclaration)
	}

	if c.OneToMany != nil {
		elements++
	}

	if c.ManyToMany != nil {
		elements++

		v.validateValues(path, &c.ManyToMany.ValueDeclaration)
	}

	if elements != 1 {
		v.res.AddError("collection_element",
			"collection must declare exactly one of element, one-to-many, many-to-many", v.origin, path)
	}

	if c.Element != nil || c.ManyToMany != nil {
		if c.Table == "" {
			v.res.AddError("missing_collection_table", "collection of values needs a table", v.origin, path)
		}
	}

	for _, f := range c.Filters {
		v.validateFilter(path, f)
	}
}

// validateValues reports column/formula declarations that cannot be combined.
func (v *validator) validateValues(path string, d *ValueDeclaration) {
	if err := CheckValueDeclaration(d); err != "" {
		v.res.AddError("column_formula_conflict", err, v.origin, path)
	}
}

// noteImplicitColumn records that an attribute without any column or formula
// maps to a column named after itself.
func (v *validator) noteImplicitColumn(path, name string, d *ValueDeclaration) {
	if d.IsEmpty() {
		v.res.AddInfo("implicit_column", fmt.Sprintf("no column declared, using %q", name), v.origin, path)
	}
}

func (v *validator) validateSelector(path, directive string, value Selector, allowed []string) {
	if !value.IsSet() || slices.Contains(allowed, string(value)) {
		return
	}

	v.res.AddError("unknown_"+directive,
		fmt.Sprintf("unexpected %s selection %q", directive, string(value)),
		v.origin, path, match.Suggest(string(value), allowed, match.DefaultSuggestThreshold, 2)...)
}

func (v *validator) validateCascade(directive, path string) {
	for _, token := range common.SplitList(directive) {
		if _, ok := source.ParseCascadeStyle(token); ok {
			continue
		}

		v.res.AddError("unknown_cascade",
			fmt.Sprintf("unsupported cascade style %q", token), v.origin, path,
			match.Suggest(token, source.CascadeStyleNames(), match.DefaultSuggestThreshold, 2)...)
	}
}

// CheckValueDeclaration returns a description of the conflict when a value
// declaration mixes forms that cannot be combined, or "" when it is usable.
func CheckValueDeclaration(d *ValueDeclaration) string {
	return source.ValueDeclarationConflict(d.ColumnAttribute, d.FormulaAttribute, len(d.Columns), len(d.Formulas))
}
