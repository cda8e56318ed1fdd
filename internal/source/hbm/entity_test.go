package hbm

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

const orderDocument = `
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
    id: {name: id, column: order_id, type: long, generator: sequence}
    natural-id:
      mutable: true
      attributes:
        - property: {name: number, column: order_number}
    attributes:
      - property:
          name: status
          not-null: true
      - property:
          name: total
          formula: "quantity * unit_price"
      - property:
          name: created
          generated: insert
      - component:
          name: shipTo
          class: Address
          parent: order
          attributes:
            - property: {name: street}
            - property: {name: city, column: ship_city}
      - many-to-one:
          name: customer
          class: Customer
          column: customer_code
          property-ref: code
      - list:
          name: lines
          inverse: true
          batch-size: 10
          key: {column: order_id}
          list-index: {column: position, base: 1}
          one-to-many: {class: OrderLine}
      - set:
          name: tags
          table: order_tags
          lazy: extra
          key: {column: order_id}
          element: {type: string, column: tag}
          filters:
            - {name: byStatus}
    filters:
      - {name: byStatus, condition: "status <> 'DELETED'"}
  - name: Customer
    id: {name: id}
    attributes:
      - property: {name: code}
`

func TestEntitySources_Order(t *testing.T) {
	doc := testDocument(t, orderDocument)

	entities, err := doc.EntitySources()
	require.NoError(t, err)
	require.Len(t, entities, 2)

	order := entities[0]
	assert.Equal(t, "shop.Order", order.EntityName())
	assert.Equal(t, "shop.Order", order.ClassName())
	assert.Equal(t, "orders", order.PrimaryTableName())
	assert.Equal(t, source.Origin{Type: source.OriginMappingDocument, Name: "test.hbm.yaml"}, order.Origin())
	assert.Equal(t, []source.FilterSource{
		source.StaticFilterSource{FilterName: "byStatus", FilterCondition: "status <> 'DELETED'"},
	}, order.FilterSources())

	names := make([]string, 0, len(order.AttributeSources()))
	for _, attr := range order.AttributeSources() {
		names = append(names, attr.Name())
	}

	assert.Equal(t, []string{"number", "status", "total", "created", "shipTo", "customer", "lines", "tags"}, names,
		spew.Sdump(order.AttributeSources()))
}

func TestEntitySources_Identifier(t *testing.T) {
	entities, err := testDocument(t, orderDocument).EntitySources()
	require.NoError(t, err)

	id, ok := entities[0].IdentifierSource().(*IdentifierSource)
	require.True(t, ok)
	assert.Equal(t, "id", id.Name())
	assert.Equal(t, "long", id.TypeInformation().Name)
	assert.Equal(t, "sequence", id.Generator())
	assert.Equal(t, source.NotNaturalID, id.NaturalIDMutability())
	assert.False(t, id.AreValuesNullableByDefault())
	assert.False(t, id.AreValuesIncludedInUpdateByDefault())

	require.Len(t, id.RelationalValueSources(), 1)
	col := id.RelationalValueSources()[0].(source.ColumnSource)
	assert.Equal(t, "order_id", col.Name())
	assert.False(t, col.IsNullable())

	customerID := entities[1].IdentifierSource().(*IdentifierSource)
	assert.Equal(t, "assigned", customerID.Generator())
	assert.Equal(t, "id", customerID.RelationalValueSources()[0].(source.ColumnSource).Name())
	assert.Equal(t, "Customer", entities[1].PrimaryTableName(), "table defaults to the unqualified class name")
}

func TestEntitySources_NaturalIDMutability(t *testing.T) {
	entities, err := testDocument(t, orderDocument).EntitySources()
	require.NoError(t, err)

	attrs := entities[0].AttributeSources()
	assert.Equal(t, source.NaturalIDMutable, attrs[0].(source.SingularAttributeSource).NaturalIDMutability())
	assert.Equal(t, source.NotNaturalID, attrs[1].(source.SingularAttributeSource).NaturalIDMutability())

	immutable := testDocument(t, `
classes:
  - name: Country
    id: {name: id}
    natural-id:
      attributes:
        - property: {name: iso}
        - component:
            name: label
            attributes:
              - property: {name: text}
`)

	entities, err = immutable.EntitySources()
	require.NoError(t, err)

	attrs = entities[0].AttributeSources()
	assert.Equal(t, source.NaturalIDImmutable, attrs[0].(source.SingularAttributeSource).NaturalIDMutability())

	label := attrs[1].(*ComponentAttributeSource)
	assert.Equal(t, source.NaturalIDImmutable, label.NaturalIDMutability())
	assert.Equal(t, source.NaturalIDImmutable,
		label.AttributeSources()[0].(source.SingularAttributeSource).NaturalIDMutability())
}

func TestEntitySources_Properties(t *testing.T) {
	entities, err := testDocument(t, orderDocument).EntitySources()
	require.NoError(t, err)

	attrs := entities[0].AttributeSources()

	status := attrs[1].(*PropertyAttributeSource)
	assert.Equal(t, source.NatureBasic, status.Nature())
	assert.False(t, status.AreValuesNullableByDefault())
	assert.Equal(t, "status", status.RelationalValueSources()[0].(source.ColumnSource).Name())

	total := attrs[2].(*PropertyAttributeSource)
	require.Len(t, total.RelationalValueSources(), 1)
	derived, ok := total.RelationalValueSources()[0].(source.DerivedValueSource)
	require.True(t, ok)
	assert.Equal(t, "quantity * unit_price", derived.Expression())
	assert.Equal(t, "orders", derived.ContainingTableName())

	created := attrs[3].(*PropertyAttributeSource)
	assert.Equal(t, source.GenerationInsert, created.Generation())
	assert.False(t, created.AreValuesIncludedInInsertByDefault())
	assert.True(t, created.AreValuesIncludedInUpdateByDefault())
}

func TestEntitySources_Component(t *testing.T) {
	entities, err := testDocument(t, orderDocument).EntitySources()
	require.NoError(t, err)

	shipTo, ok := entities[0].AttributeSources()[4].(*ComponentAttributeSource)
	require.True(t, ok)
	assert.Equal(t, source.NatureComposite, shipTo.Nature())
	assert.Equal(t, "shop.Address", shipTo.ComponentClassName())
	assert.Equal(t, "order", shipTo.ParentReferenceAttributeName())
	require.Len(t, shipTo.AttributeSources(), 2)

	var columns []string
	for _, v := range shipTo.RelationalValueSources() {
		columns = append(columns, v.(source.ColumnSource).Name())
		assert.Equal(t, "orders", v.ContainingTableName())
	}

	assert.Equal(t, []string{"street", "ship_city"}, columns)
}

func TestEntitySources_ManyToOneInEntity(t *testing.T) {
	entities, err := testDocument(t, orderDocument).EntitySources()
	require.NoError(t, err)

	customer := entities[0].AttributeSources()[5].(source.ToOneAttributeSource)
	assert.Equal(t, "shop.Customer", customer.ReferencedEntityName())
	assert.Equal(t, []string{"save-update"}, customer.CascadeStyles().Names())
	require.NotNil(t, customer.ForeignKeyTargetColumnResolutionDelegate())
	assert.Equal(t, "code", customer.ForeignKeyTargetColumnResolutionDelegate().ReferencedAttributeName())
}

func TestEntitySources_Collections(t *testing.T) {
	entities, err := testDocument(t, orderDocument).EntitySources()
	require.NoError(t, err)

	attrs := entities[0].AttributeSources()

	lines := attrs[6].(*PluralAttributeSource)
	assert.False(t, lines.IsSingular())
	assert.Equal(t, source.PluralList, lines.PluralNature())
	assert.Equal(t, source.ElementOneToMany, lines.ElementNature())
	assert.Equal(t, source.NatureOneToMany, lines.Nature())
	assert.Equal(t, "shop.OrderLine", lines.ReferencedEntityName())
	assert.Equal(t, "", lines.CollectionTableName())
	assert.True(t, lines.IsInverse())
	assert.Equal(t, source.FetchStyleBatch, lines.FetchStyle())
	assert.Equal(t, source.FetchDelayed, lines.FetchTiming())
	require.Len(t, lines.KeyValueSources(), 1)
	assert.Equal(t, "order_id", lines.KeyValueSources()[0].(source.ColumnSource).Name())
	assert.False(t, lines.KeyValueSources()[0].(source.ColumnSource).IsIncludedInInsert(), "inverse side")
	require.Len(t, lines.IndexValueSources(), 1)
	assert.Equal(t, "position", lines.IndexValueSources()[0].(source.ColumnSource).Name())
	assert.Equal(t, 1, lines.IndexBase())
	assert.Nil(t, lines.KeyTargetResolutionDelegate())

	tags := attrs[7].(*PluralAttributeSource)
	assert.Equal(t, source.PluralSet, tags.PluralNature())
	assert.Equal(t, source.ElementBasic, tags.ElementNature())
	assert.Equal(t, source.NatureElementCollection, tags.Nature())
	assert.Equal(t, "order_tags", tags.CollectionTableName())
	assert.Equal(t, "string", tags.ElementTypeInformation().Name)
	assert.Equal(t, source.FetchExtraDelayed, tags.FetchTiming())
	assert.Equal(t, []string{"save-update"}, tags.CascadeStyles().Names())
	require.Len(t, tags.ElementValueSources(), 1)
	assert.Equal(t, "tag", tags.ElementValueSources()[0].(source.ColumnSource).Name())
	assert.Equal(t, "order_tags", tags.ElementValueSources()[0].ContainingTableName())
	assert.Equal(t, []source.FilterSource{source.StaticFilterSource{FilterName: "byStatus"}}, tags.FilterSources())
}

const customerDocument = `
package: shop
classes:
  - name: Customer
    table: customers
    id: {name: id, column: customer_id}
    attributes:
      - property: {name: code}
    joins:
      - table: customer_details
        key: {column: customer_id, foreign-key: fk_details_customer}
        optional: true
        attributes:
          - property: {name: bio, formula: "coalesce(bio, '')"}
          - component:
              name: address
              class: Address
              attributes:
                - property: {name: city}
          - many-to-one: {name: agent, class: Agent, column: agent_id}
`

func TestEntitySources_SecondaryTable(t *testing.T) {
	entities, err := testDocument(t, customerDocument).EntitySources()
	require.NoError(t, err)
	require.Len(t, entities, 1)

	customer := entities[0]
	require.Len(t, customer.SecondaryTableSources(), 1)

	details := customer.SecondaryTableSources()[0]
	assert.Equal(t, "customer_details", details.TableName())
	assert.Equal(t, "fk_details_customer", details.ForeignKeyName())
	assert.True(t, details.IsOptional())
	assert.False(t, details.IsInverse())
	require.Len(t, details.KeyValueSources(), 1)
	assert.Equal(t, "customer_id", details.KeyValueSources()[0].(source.ColumnSource).Name())
	assert.Equal(t, "customer_details", details.KeyValueSources()[0].ContainingTableName())

	attrs := map[string]source.AttributeSource{}
	for _, attr := range customer.AttributeSources() {
		attrs[attr.Name()] = attr
	}

	require.Len(t, attrs, 4, spew.Sdump(customer.AttributeSources()))

	code := attrs["code"].(source.SingularAttributeSource)
	assert.Equal(t, "customers", code.RelationalValueSources()[0].ContainingTableName())

	bio := attrs["bio"].(source.SingularAttributeSource)
	assert.Equal(t, "customer_details", bio.RelationalValueSources()[0].ContainingTableName())

	address := attrs["address"].(source.ComponentAttributeSource)
	assert.Equal(t, "customer_details", address.RelationalValueSources()[0].ContainingTableName(),
		"component values follow the joined table")

	agent := attrs["agent"].(source.ToOneAttributeSource)
	assert.Equal(t, "customer_details", agent.RelationalValueSources()[0].ContainingTableName())
}

func TestFilterDefSources_PreserveOrder(t *testing.T) {
	defs := testDocument(t, orderDocument).FilterDefSources()
	require.Len(t, defs, 1)

	def := defs[0]
	assert.Equal(t, "byStatus", def.Name())
	assert.Equal(t, "status = :status", def.Condition())
	require.Len(t, def.ParameterSources(), 2)
	assert.Equal(t, source.StaticFilterParameterSource{Name: "status", Type: "string"}, def.ParameterSources()[0])
	assert.Equal(t, "status", def.ParameterSources()[0].ParameterName())
	assert.Equal(t, "string", def.ParameterSources()[0].ParameterValueTypeName())
	assert.Equal(t, "since", def.ParameterSources()[1].ParameterName())
	assert.Equal(t, "date", def.ParameterSources()[1].ParameterValueTypeName())
}

func TestEntitySources_Errors(t *testing.T) {
	tests := []struct {
		name     string
		document string
		message  string
	}{
		{
			name:     "missing id",
			document: "classes:\n  - name: Order\n",
			message:  "Entity 'Order' declares no identifier",
		},
		{
			name: "unknown lazy",
			document: `
classes:
  - name: Order
    id: {name: id}
    attributes:
      - many-to-one: {name: customer, class: Customer, lazy: sometimes}
`,
			message: "Unexpected lazy selection [sometimes] on 'Order.customer'",
		},
		{
			name: "collection in natural-id",
			document: `
classes:
  - name: Order
    id: {name: id}
    natural-id:
      attributes:
        - set: {name: tags, table: t, key: {column: order_id}, element: {column: tag}}
`,
			message: "Collection 'Order.tags' cannot be part of a natural-id",
		},
		{
			name: "value collection without table",
			document: `
classes:
  - name: Order
    id: {name: id}
    attributes:
      - bag: {name: tags, key: {column: order_id}, element: {column: tag}}
`,
			message: "Collection of values 'Order.tags' declares no table",
		},
		{
			name: "collection without key",
			document: `
classes:
  - name: Order
    id: {name: id}
    attributes:
      - bag: {name: lines, one-to-many: {class: OrderLine}}
`,
			message: "Collection 'Order.lines' declares no key column",
		},
		{
			name: "list without index",
			document: `
classes:
  - name: Order
    id: {name: id}
    attributes:
      - list: {name: lines, key: {column: order_id}, one-to-many: {class: OrderLine}}
`,
			message: "List 'Order.lines' declares no list-index column",
		},
		{
			name: "many-to-many without column",
			document: `
classes:
  - name: Order
    id: {name: id}
    attributes:
      - set: {name: promos, table: order_promos, key: {column: order_id}, many-to-many: {class: Promo}}
`,
			message: "Many-to-many 'Order.promos' declares no column",
		},
		{
			name: "join of the primary table",
			document: `
classes:
  - name: Order
    table: orders
    id: {name: id}
    joins:
      - {table: orders, key: {column: id}, attributes: []}
`,
			message: "Join in 'Order' maps the primary table 'orders'",
		},
		{
			name: "join without key",
			document: `
classes:
  - name: Order
    id: {name: id}
    joins:
      - {table: order_notes, attributes: [{property: {name: note}}]}
`,
			message: "Join of 'order_notes' in 'Order' declares no key column",
		},
		{
			name: "table joined twice",
			document: `
classes:
  - name: Order
    id: {name: id}
    joins:
      - {table: order_notes, key: {column: order_id}, attributes: []}
      - {table: order_notes, key: {column: order_id}, attributes: []}
`,
			message: "Table 'order_notes' is joined twice in 'Order'",
		},
		{
			name: "collection in join",
			document: `
classes:
  - name: Order
    id: {name: id}
    joins:
      - table: order_notes
        key: {column: order_id}
        attributes:
          - set: {name: tags, table: t, key: {column: order_id}, element: {column: tag}}
`,
			message: "Collection 'Order.tags' cannot be mapped to secondary table 'order_notes'",
		},
		{
			name: "unknown generated",
			document: `
classes:
  - name: Order
    id: {name: id}
    attributes:
      - property: {name: created, generated: sometimes}
`,
			message: "Unexpected generated selection [sometimes] on 'Order.created'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities, err := testDocument(t, tt.document).EntitySources()
			require.Error(t, err)
			assert.Nil(t, entities)

			var mappingErr *source.MappingError
			require.True(t, errors.As(err, &mappingErr))
			assert.Contains(t, mappingErr.Message, tt.message)
		})
	}
}

func TestNewMappingDocument_DefaultsOverrideBase(t *testing.T) {
	doc := testDocument(t, "package: shop\ndefault-lazy: false\ndefault-access: field\nclasses: []\n")

	defaults := doc.MappingDefaults()
	assert.Equal(t, "shop", defaults.PackageName)
	assert.False(t, defaults.AssociationsLazy)
	assert.Equal(t, "field", defaults.PropertyAccessorName)
	assert.Equal(t, "none", defaults.CascadeStyle)
	assert.Equal(t, "id", defaults.IDColumnName)
	assert.Equal(t, "shop.Order", doc.QualifyClassName("Order"))
	assert.Equal(t, "other.Order", doc.QualifyClassName("other.Order"))
}
