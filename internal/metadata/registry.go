package metadata

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/twtxwydavid/hibernate-orm/internal/match"
	"github.com/twtxwydavid/hibernate-orm/internal/relational"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// entityState is an entity registered in the first pass.
type entityState struct {
	source  source.EntitySource
	binding *EntityBinding
	// values by attribute path relative to the entity, identifier included.
	values map[string][]relational.Value
	// columns by table, then by logical column name.
	columns map[string]map[string]*relational.Column
	// tables are the primary and secondary tables of the entity.
	tables map[string]struct{}
}

func newEntityState(e source.EntitySource) *entityState {
	return &entityState{
		source:  e,
		values:  make(map[string][]relational.Value),
		columns: make(map[string]map[string]*relational.Column),
	}
}

func (s *entityState) name() string { return s.source.EntityName() }

func (s *entityState) identifierValues() []relational.Value {
	return s.values[s.source.IdentifierSource().Name()]
}

// register records the values of attribute path and indexes its columns.
func (s *entityState) register(path string, values []relational.Value) {
	s.values[path] = values

	for _, v := range values {
		col, ok := v.(*relational.Column)
		if !ok {
			continue
		}

		table := s.columns[col.TableName]
		if table == nil {
			table = make(map[string]*relational.Column)
			s.columns[col.TableName] = table
		}

		if _, exists := table[col.Name]; !exists {
			table[col.Name] = col
		}
	}
}

// checkTables rejects values placed in a table the entity does not map.
func (s *entityState) checkTables(path string, values []relational.Value) error {
	for _, v := range values {
		if _, ok := s.tables[v.Table()]; ok {
			continue
		}

		return source.NewMappingError(s.source.Origin(),
			"'%s' maps '%s' to table '%s', which is neither the primary nor a secondary table of entity '%s'",
			path, v.Text(), v.Table(), s.name())
	}

	return nil
}

func (s *entityState) attributeNames() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// resolutionContext is the read-only view of a target entity handed to
// join column delegates.
type resolutionContext struct {
	target *entityState
}

func (c resolutionContext) ResolveRelationalValuesForAttribute(attributeName string) ([]relational.Value, error) {
	values, ok := c.target.values[attributeName]
	if !ok {
		msg := fmt.Sprintf("entity '%s' has no attribute '%s'", c.target.name(), attributeName)
		if hint := match.Closest(attributeName, c.target.attributeNames()); hint != "" {
			msg += " (did you mean " + hint + "?)"
		}

		return nil, errors.New(msg)
	}

	return values, nil
}

func (c resolutionContext) ResolveColumn(columnName, tableName string) (*relational.Column, error) {
	if tableName == "" {
		tableName = c.target.source.PrimaryTableName()
	}

	table := c.target.columns[tableName]
	if col, ok := table[columnName]; ok {
		return col, nil
	}

	// Logical names are matched case-insensitively as a fallback.
	for name, col := range table {
		if strings.EqualFold(name, columnName) {
			return col, nil
		}
	}

	return nil, fmt.Errorf("entity '%s' has no column '%s' in table '%s'", c.target.name(), columnName, tableName)
}

// registry indexes entities by entity name and by class name.
type registry struct {
	entities []*entityState
	byName   map[string]*entityState
	byClass  map[string][]*entityState
	defs     map[string]*FilterDefBinding
}

func newRegistry() *registry {
	return &registry{
		byName:  make(map[string]*entityState),
		byClass: make(map[string][]*entityState),
		defs:    make(map[string]*FilterDefBinding),
	}
}

func (r *registry) add(e source.EntitySource) error {
	if prev, ok := r.byName[e.EntityName()]; ok {
		return source.NewMappingError(e.Origin(),
			"Duplicate entity name '%s', already mapped by %s", e.EntityName(), prev.source.Origin())
	}

	state := newEntityState(e)
	r.entities = append(r.entities, state)
	r.byName[e.EntityName()] = state

	if class := e.ClassName(); class != "" {
		r.byClass[class] = append(r.byClass[class], state)
	}

	return nil
}

// lookup finds an entity by entity name, then by class name when exactly one
// entity maps that class.
func (r *registry) lookup(name string) (*entityState, bool) {
	if state, ok := r.byName[name]; ok {
		return state, true
	}

	if states := r.byClass[name]; len(states) == 1 {
		return states[0], true
	}

	return nil, false
}

func (r *registry) entityNames() []string {
	names := make([]string, 0, len(r.entities))
	for _, e := range r.entities {
		names = append(names, e.name())
	}

	return names
}

func (r *registry) filterDefNames() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
