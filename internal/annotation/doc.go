// Package annotation reads mapping annotations from Go source.
//
// Annotations are doc-comment directives on struct types and their fields:
//
//	//orm:Entity{Name: "Order"}
//	//orm:Table{Name: "orders"}
//	type Order struct {
//		//orm:Id
//		ID int64
//
//		//orm:ManyToOne{Fetch: LAZY}
//		//orm:JoinColumn{Name: "customer_code", ReferencedColumnName: "code"}
//		Customer *Customer
//	}
//
// A directive is a Go composite literal (or a bare identifier) parsed with
// go/parser. Keyed elements become named values; positional elements are
// stored under "Value". Values are strings, booleans, integers, identifiers
// (read as strings), lists, and nested instances.
//
// Key types:
//   - Instance: one parsed directive with typed getters
//   - Index: every annotated class of the loaded packages
//   - Loader: golang.org/x/tools/go/packages front end building an Index
package annotation
