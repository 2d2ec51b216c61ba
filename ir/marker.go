package ir

// Marker is the typed payload of a MarkerType node. Markers are built by the
// tag constructors registered in package marker when the loader meets one of
// their tags; a marker node usually sits as the key of a single-entry object.
type Marker interface {
	// Kind names the marker family, e.g. "Assembly". Markers of the same
	// kind with the same name are the same key regardless of which tag
	// spelling produced them.
	Kind() string
	Name() *Node
}

func FromMarker(m Marker, tag string) *Node {
	return &Node{
		Type:   MarkerType,
		Tag:    tag,
		Marker: m,
	}
}
