// Package analyze provides package loading and record schema extraction.
//
// It uses golang.org/x/tools/go/packages with go/types to describe every
// named struct of the loaded packages as a Record: its type parameters and
// its fields in declaration order, each with the field type rendered as Go
// source text relative to the record's own package.
//
// Key types:
//   - TypeID: package import path + type name
//   - Record: a struct type with fields, type parameters and required imports
//   - Field: field name, type text and the shape of the type (pointer, slice, map)
package analyze
