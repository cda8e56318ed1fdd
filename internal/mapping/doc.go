// Package mapping provides the YAML schema of mapping documents, parsing with
// defaults, and structural validation.
//
// A mapping document describes how classes map to tables, in the spirit of
// classic hbm files:
//
//	package: shop
//	default-lazy: true
//	default-cascade: none
//	filter-defs:
//	  - name: byStatus
//	    condition: "status = :status"
//	    parameters:
//	      - {name: status, type: string}
//	classes:
//	  - name: Order
//	    table: orders
//	    id: {name: id, column: order_id, type: long}
//	    natural-id:
//	      mutable: false
//	      attributes:
//	        - property: {name: number, column: order_number}
//	    attributes:
//	      - property: {name: status, not-null: true}
//	      - many-to-one:
//	          name: customer
//	          class: Customer
//	          column: customer_code
//	          property-ref: code
//	          fetch: join
//	          cascade: "save-update, lock"
//	      - set:
//	          name: lines
//	          key: {column: order_id}
//	          one-to-many: {class: OrderLine}
//	    filters:
//	      - name: byStatus
//
// # Value declarations
//
// Every element that maps to columns accepts four mutually exclusive forms:
//   - "column": shorthand naming a single column
//   - "formula": shorthand holding a single SQL expression
//   - "columns": explicit list (plain names or full column elements)
//   - "formulas": explicit list of expressions
//
// # Selectors
//
// "lazy", "fetch" and "outer-join" are kept as raw strings here; the source
// implementations interpret them once and reject unknown values. Validate
// reports the same problems ahead of time, with spelling suggestions.
//
// # Attribute order
//
// "attributes" is a list of single-key entries so the declaration order of
// mixed attribute kinds is preserved.
package mapping
