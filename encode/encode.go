package encode

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/assemyaml/assemyaml/format"
	"github.com/assemyaml/assemyaml/ir"

	goyaml "github.com/goccy/go-yaml"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnresolvedMarker = errors.New("unresolved marker")
	ErrCycle            = errors.New("node contains itself")
	ErrNotFinite        = errors.New("non-finite number has no JSON form")
	ErrDuplicateJSONKey = errors.New("keys collide as JSON strings")
)

type EncState struct {
	format  format.Format
	indent  int
	markers bool

	active map[*ir.Node]bool
}

// Encode writes node to w as a single document in the requested format.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
		active: map[*ir.Node]bool{},
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.format.IsJSON() {
		return encodeJSON(node, w, es)
	}
	return encodeYAML(node, w, es)
}

func encodeYAML(node *ir.Node, w io.Writer, es *EncState) error {
	y, err := es.yamlNode(node)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(es.indent)
	if err := enc.Encode(y); err != nil {
		return err
	}
	return enc.Close()
}

func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	v, err := es.native(node)
	if err != nil {
		return err
	}
	d, err := goyaml.MarshalWithOptions(v, goyaml.JSON())
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

func (es *EncState) enter(node *ir.Node) error {
	if es.active[node] {
		return fmt.Errorf("%w at %s", ErrCycle, node.Start)
	}
	es.active[node] = true
	return nil
}

func (es *EncState) leave(node *ir.Node) {
	delete(es.active, node)
}

func (es *EncState) yamlNode(node *ir.Node) (*yaml.Node, error) {
	switch node.Type {
	case ir.NullType:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case ir.BoolType:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(node.Bool)}, nil
	case ir.NumberType:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: numberText(node)}, nil
	case ir.StringType:
		tag := node.Tag
		if tag == "" {
			tag = "!!str"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: node.String}, nil
	case ir.MarkerType:
		return es.markerNode(node)
	}
	if err := es.enter(node); err != nil {
		return nil, err
	}
	defer es.leave(node)
	res := &yaml.Node{Tag: node.Tag}
	if node.Type == ir.ArrayType {
		res.Kind = yaml.SequenceNode
		res.Content = make([]*yaml.Node, 0, len(node.Values))
	} else {
		res.Kind = yaml.MappingNode
		res.Content = make([]*yaml.Node, 0, 2*len(node.Values))
	}
	for i, v := range node.Values {
		if node.Type == ir.ObjectType {
			k, err := es.yamlNode(node.Fields[i])
			if err != nil {
				return nil, err
			}
			res.Content = append(res.Content, k)
		}
		y, err := es.yamlNode(v)
		if err != nil {
			return nil, err
		}
		res.Content = append(res.Content, y)
	}
	return res, nil
}

func (es *EncState) markerNode(node *ir.Node) (*yaml.Node, error) {
	if !es.markers || node.Marker == nil {
		return nil, unresolved(node)
	}
	name := node.Marker.Name()
	if name == nil || name.Type.IsLeaf() {
		v := ""
		if name != nil {
			v = name.ScalarText()
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: node.Tag, Value: v, Style: yaml.TaggedStyle}, nil
	}
	res, err := es.yamlNode(name)
	if err != nil {
		return nil, err
	}
	res.Tag = node.Tag
	res.Style |= yaml.TaggedStyle
	return res, nil
}

func unresolved(node *ir.Node) error {
	kind := "marker"
	if node.Marker != nil {
		kind = node.Marker.Kind()
	}
	return fmt.Errorf("%w: %s %s at %s", ErrUnresolvedMarker, kind, node.ScalarText(), node.Start)
}

// numberText renders a number so that it reads back as the same kind of
// number.
func numberText(node *ir.Node) string {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10)
	case node.Float64 != nil:
		f := *node.Float64
		switch {
		case math.IsInf(f, 1):
			return ".inf"
		case math.IsInf(f, -1):
			return "-.inf"
		case math.IsNaN(f):
			return ".nan"
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	}
	return node.Number
}

// native converts node to values goccy/go-yaml marshals as JSON in key
// order.
func (es *EncState) native(node *ir.Node) (any, error) {
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.StringType:
		return node.String, nil
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return *node.Int64, nil
		case node.Float64 != nil:
			f := *node.Float64
			if math.IsInf(f, 0) || math.IsNaN(f) {
				return nil, fmt.Errorf("%w at %s", ErrNotFinite, node.Start)
			}
			return f, nil
		}
		if i, err := strconv.ParseInt(strings.ReplaceAll(node.Number, "_", ""), 0, 64); err == nil {
			return i, nil
		}
		if f, err := strconv.ParseFloat(strings.ReplaceAll(node.Number, "_", ""), 64); err == nil {
			return f, nil
		}
		return node.Number, nil
	case ir.MarkerType:
		if !es.markers {
			return nil, unresolved(node)
		}
		return node.ScalarText(), nil
	}
	if err := es.enter(node); err != nil {
		return nil, err
	}
	defer es.leave(node)
	if node.Type == ir.ArrayType {
		res := make([]any, 0, len(node.Values))
		for _, v := range node.Values {
			x, err := es.native(v)
			if err != nil {
				return nil, err
			}
			res = append(res, x)
		}
		return res, nil
	}
	res := make(goyaml.MapSlice, 0, len(node.Values))
	seen := make(map[string]*ir.Node, len(node.Values))
	for i, v := range node.Values {
		k := node.Fields[i]
		if k.Type == ir.MarkerType && !es.markers {
			return nil, unresolved(k)
		}
		text := k.ScalarText()
		if prev, ok := seen[text]; ok {
			return nil, fmt.Errorf("%w: %q at %s and %s", ErrDuplicateJSONKey, text, prev.Start, k.Start)
		}
		seen[text] = k
		x, err := es.native(v)
		if err != nil {
			return nil, err
		}
		res = append(res, goyaml.MapItem{Key: text, Value: x})
	}
	return res, nil
}
