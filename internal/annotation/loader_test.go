package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shopPackage = "github.com/twtxwydavid/hibernate-orm/examples/shop"

func TestLoader_LoadPackages(t *testing.T) {
	loader := NewLoader("")

	index, err := loader.LoadPackages(shopPackage)
	require.NoError(t, err)
	require.NotNil(t, index)
	assert.Same(t, index, loader.Index())

	entities := index.ClassesAnnotatedWith("Entity")
	require.Len(t, entities, 2)
	assert.Equal(t, "shop.Customer", entities[0].QualifiedName())
	assert.Equal(t, shopPackage, entities[0].PkgPath)
	assert.Equal(t, "shop.Order", entities[1].QualifiedName())

	require.NotNil(t, index.Class("shop.OrderLine"), "unannotated types are indexed too")

	defs := index.Annotations("FilterDef")
	require.Len(t, defs, 1)
	assert.Equal(t, "activeOnly", defs[0].Text("Name"))
}

func TestLoader_TypeCheckedFieldTypes(t *testing.T) {
	index, err := NewLoader("").LoadPackages(shopPackage)
	require.NoError(t, err)

	var placedAt, customer *FieldInfo

	for _, f := range index.Class("shop.Order").Fields {
		switch f.Name {
		case "PlacedAt":
			placedAt = f
		case "Customer":
			customer = f
		}
	}

	require.NotNil(t, placedAt)
	require.NotNil(t, customer)
	assert.Equal(t, TypeRef{Name: "time.Time"}, placedAt.Type)
	assert.Equal(t, TypeRef{Name: "shop.Customer", Pointer: true}, customer.Type)
}

func TestLoader_PackageErrors(t *testing.T) {
	_, err := NewLoader("").LoadPackages(shopPackage + "/missing")
	require.Error(t, err)
}
