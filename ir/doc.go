// Package ir provides the in-memory tree for YAML documents handled by the
// assembly preprocessor.
//
// # Node Structure
//
// A Node is a tagged union whose Type selects the fields in use:
//
//   - NullType, BoolType, NumberType, StringType: scalars
//   - ArrayType: an ordered sequence in Values
//   - ObjectType: an ordered mapping, Fields[i] is the key of Values[i]
//   - MarkerType: a tag marker (see package marker) carried in Marker
//
// Number values are placed under Int64 when they are integers, Float64 when
// they are floating point, and Number as a textual fallback.
//
// Tag holds any tag from the source that is not one of the core YAML types,
// for instance "!Ref". Such tags are preserved and re-emitted by package
// encode.
//
// # Keys
//
// Object keys are unique under SameKey: equal type, tag and value. A marker key
// such as "!Assembly Foo" never equals the plain key "Foo".
//
// # Positions
//
// Start and End point into the source text the node was loaded from. Nodes
// built by code have nil positions.
//
// # Sharing
//
// Nodes carry no parent links. A single *Node may appear at several places in
// one or more trees; this is how merged assembly values are spliced, and
// mutating such a node is visible from every place it appears.
//
// # Thread Safety
//
// Node structures are not thread-safe.
package ir
