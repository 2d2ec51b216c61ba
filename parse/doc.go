// Package parse loads YAML text into ir nodes.
//
// # Usage
//
//	// Parse a single document
//	node, err := parse.Parse([]byte(`{name: alice, age: 30}`))
//
//	// Iterate over a stream of documents
//	dec := parse.NewDecoder(r, parse.DocName("resources.yaml"), parse.LocalTags(true))
//	for {
//	    doc, err := dec.Decode()
//	    if err == io.EOF {
//	        break
//	    }
//	    ...
//	}
//
// Every node gets Start and End positions naming the document (DocName) and
// the 1-based line and column it came from.
//
// # Markers
//
// Tags registered in package marker are turned into MarkerType nodes whose
// marker carries the tagged content as its name: a tagged scalar names the
// marker by its text, a tagged sequence or mapping keeps its structure (which
// package assemble later rejects as a name). Global marker tags are always
// active; the "!Assembly"/"!Transclude" spellings only with LocalTags(true).
// Other tags such as "!Ref" are kept on the node and passed through.
//
// # Limits
//
// Mapping keys must be unique (ir.SameKey) and nesting is bounded by
// MaxDepth.
package parse
