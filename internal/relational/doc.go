// Package relational models the physical side of a mapping: tables and the
// values (columns or derived SQL expressions) an attribute is stored in.
package relational
