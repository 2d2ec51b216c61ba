package assemyaml

import (
	"bytes"
	"fmt"

	"github.com/assemyaml/assemyaml/encode"
	"github.com/assemyaml/assemyaml/format"
	"github.com/assemyaml/assemyaml/ir"
	"github.com/assemyaml/assemyaml/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

// Patch post-processes an assembled document. A JSON patch (RFC 6902) is a
// sequence of operations; a merge patch (RFC 7386) is a mapping merged into
// the document. Patches go through JSON, so tags on the patched document
// are not kept.
type Patch struct {
	Name  string
	Merge bool

	json []byte
	ops  jsonpatch.Patch
}

// ParsePatch reads a patch written in YAML or JSON. A sequence is taken as
// a JSON patch and a mapping as a merge patch.
func ParsePatch(name string, d []byte) (*Patch, error) {
	node, err := parse.Parse(d, parse.DocName(name))
	if err != nil {
		return nil, err
	}
	j, err := toJSON(node)
	if err != nil {
		return nil, fmt.Errorf("patch %s: %w", name, err)
	}
	p := &Patch{Name: name, json: j}
	switch node.Type {
	case ir.ObjectType:
		p.Merge = true
	case ir.ArrayType:
		p.ops, err = jsonpatch.DecodePatch(j)
		if err != nil {
			return nil, fmt.Errorf("patch %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("patch %s: expected a sequence or a mapping, got %s", name, node.Type)
	}
	return p, nil
}

func (p *Patch) Apply(doc *ir.Node) (*ir.Node, error) {
	d, err := toJSON(doc)
	if err != nil {
		return nil, err
	}
	var out []byte
	if p.Merge {
		out, err = jsonpatch.MergePatch(d, p.json)
	} else {
		out, err = p.ops.Apply(d)
	}
	if err != nil {
		return nil, fmt.Errorf("applying patch %s: %w", p.Name, err)
	}
	return parse.Parse(out, parse.DocName(p.Name))
}

func toJSON(node *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, encode.EncodeFormat(format.JSONFormat)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
