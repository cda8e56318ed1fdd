package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shopYAML = `
package: shop
default-cascade: save-update
filter-defs:
  - name: byStatus
    condition: "status = :status"
    parameters:
      - {name: status, type: string}
      - {name: since, type: date}
classes:
  - name: Order
    table: orders
    id: {name: id, column: order_id, type: long}
    natural-id:
      mutable: false
      attributes:
        - property: {name: number, column: order_number}
    attributes:
      - property:
          name: status
          not-null: true
          insert: false
      - many-to-one:
          name: customer
          class: Customer
          column: customer_code
          property-ref: code
          fetch: join
          lazy: false
          outer-join: auto
          foreign-key: fk_order_customer
          cascade: "save-update, lock"
      - property:
          name: total
          formulas: "quantity * unit_price"
      - component:
          name: shipTo
          class: Address
          attributes:
            - property: {name: street}
            - property:
                name: zip
                columns:
                  - zip_code
                  - {name: zip_ext, length: 4, not-null: true}
      - set:
          name: lines
          lazy: extra
          batch-size: 16
          key: {column: order_id}
          one-to-many: {class: OrderLine}
      - list:
          name: notes
          table: order_notes
          key: {column: order_id}
          list-index: {column: pos}
          element: {type: string, column: note}
    filters:
      - name: byStatus
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(shopYAML))
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "shop", doc.Package)
	assert.True(t, doc.IsDefaultLazy())
	assert.Equal(t, "save-update", doc.DefaultCascade)
	assert.Equal(t, "property", doc.DefaultAccess)

	require.Len(t, doc.FilterDefs, 1)
	fd := doc.FilterDefs[0]
	assert.Equal(t, "byStatus", fd.Name)
	assert.Equal(t, "status = :status", fd.Condition)
	assert.Equal(t, []FilterParamElement{{Name: "status", Type: "string"}, {Name: "since", Type: "date"}}, fd.Parameters)

	require.Len(t, doc.Classes, 1)
	cls := doc.Classes[0]
	assert.Equal(t, "Order", cls.Name)
	assert.Equal(t, "orders", cls.Table)
	require.NotNil(t, cls.ID)
	assert.Equal(t, "order_id", cls.ID.Column)

	require.NotNil(t, cls.NaturalID)
	assert.False(t, cls.NaturalID.Mutable)
	require.Len(t, cls.NaturalID.Attributes, 1)
	assert.Equal(t, "number", cls.NaturalID.Attributes[0].Name())

	require.Len(t, cls.Attributes, 6)
	kinds := make([]string, len(cls.Attributes))
	for i := range cls.Attributes {
		kinds[i] = cls.Attributes[i].Kind()
	}
	assert.Equal(t, []string{"property", "many-to-one", "property", "component", "set", "list"}, kinds)

	status := cls.Attributes[0].Property
	require.NotNil(t, status.NotNull)
	assert.True(t, *status.NotNull)
	assert.False(t, status.IsInsert())
	assert.True(t, status.IsUpdate())
	assert.True(t, status.IsOptimisticLock())

	m2o := cls.Attributes[1].ManyToOne
	assert.Equal(t, "customer_code", m2o.ColumnAttribute)
	assert.Equal(t, Selector("join"), m2o.Fetch)
	assert.Equal(t, Selector("false"), m2o.Lazy, "unquoted booleans are read verbatim")
	assert.Equal(t, Selector("auto"), m2o.OuterJoin)
	assert.Equal(t, "code", m2o.PropertyRef)
	assert.Equal(t, "fk_order_customer", m2o.ForeignKey)

	total := cls.Attributes[2].Property
	assert.Equal(t, StringOrArray{"quantity * unit_price"}, total.Formulas)

	zip := cls.Attributes[3].Component.Attributes[1].Property
	require.Len(t, zip.Columns, 2)
	assert.Equal(t, ColumnElement{Name: "zip_code"}, zip.Columns[0])
	assert.Equal(t, "zip_ext", zip.Columns[1].Name)
	assert.Equal(t, 4, zip.Columns[1].Length)

	lines := cls.Attributes[4].Set
	assert.Equal(t, Selector("extra"), lines.Lazy)
	assert.Equal(t, 16, lines.BatchSize)
	require.NotNil(t, lines.OneToMany)
	assert.Equal(t, "OrderLine", lines.OneToMany.Class)

	notes := cls.Attributes[5].List
	require.NotNil(t, notes.Index)
	assert.Equal(t, "pos", notes.Index.Column)
	assert.Equal(t, "note", notes.Element.ColumnAttribute)
}

func TestParseMinimal(t *testing.T) {
	doc, err := Parse([]byte(`
classes:
  - name: A
    id: {name: id}
`))
	require.NoError(t, err)

	assert.True(t, doc.IsDefaultLazy())
	assert.Equal(t, "none", doc.DefaultCascade)
	assert.Equal(t, "property", doc.DefaultAccess)
	require.Len(t, doc.Classes, 1)
	assert.Empty(t, doc.Classes[0].Attributes)
}

func TestParseDefaultLazyFalse(t *testing.T) {
	doc, err := Parse([]byte("default-lazy: false\nclasses: []\n"))
	require.NoError(t, err)
	assert.False(t, doc.IsDefaultLazy())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "classes: [\n"},
		{"selector as list", "classes:\n  - name: A\n    attributes:\n      - many-to-one: {name: a, lazy: [x]}\n"},
		{"formulas as map", "classes:\n  - name: A\n    attributes:\n      - property: {name: a, formulas: {x: y}}\n"},
		{"column as list of lists", "classes:\n  - name: A\n    attributes:\n      - property: {name: a, columns: [[x]]}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shop.hbm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(shopYAML), 0o644))

	doc, err := LoadFile(path, Defaults{Lazy: false, Cascade: "all", Access: "field"})
	require.NoError(t, err)
	assert.Len(t, doc.Classes, 1)
	assert.False(t, doc.IsDefaultLazy(), "document omits default-lazy")
	assert.Equal(t, "save-update", doc.DefaultCascade, "document value wins")
	assert.Equal(t, "field", doc.DefaultAccess)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"), StockDefaults())
	require.ErrorContains(t, err, "failed to read mapping document")
}
