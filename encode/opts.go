package encode

import "github.com/assemyaml/assemyaml/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// Indent sets the YAML indentation width. The default is 2.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// AllowMarkers renders markers left in the tree as tagged scalars instead
// of failing, which is useful for looking at unresolved documents.
func AllowMarkers(v bool) EncodeOption {
	return func(es *EncState) { es.markers = v }
}
