package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/assemyaml/assemyaml/debug"
	"github.com/assemyaml/assemyaml/encode"
	"github.com/assemyaml/assemyaml/ir"
	"github.com/assemyaml/assemyaml/marker"
	"github.com/assemyaml/assemyaml/token"

	"gopkg.in/yaml.v3"
)

// Parse parses the first document in d. An empty input yields a null node.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	dec := NewDecoder(bytes.NewReader(d), opts...)
	node, err := dec.Decode()
	if errors.Is(err, io.EOF) {
		return ir.Null(), nil
	}
	return node, err
}

func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}

// ParseStream parses every document in r.
func ParseStream(r io.Reader, opts ...ParseOption) ([]*ir.Node, error) {
	dec := NewDecoder(r, opts...)
	res := []*ir.Node{}
	for {
		node, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, node)
	}
}

type Decoder struct {
	dec  *yaml.Decoder
	opts *parseOpts
	n    int
}

func NewDecoder(r io.Reader, opts ...ParseOption) *Decoder {
	return &Decoder{
		dec:  yaml.NewDecoder(r),
		opts: makeOpts(opts),
	}
}

// Decode returns the next document of the stream, or io.EOF.
func (d *Decoder) Decode() (*ir.Node, error) {
	var y yaml.Node
	if err := d.dec.Decode(&y); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %s document %d: %w", ErrParse, d.name(), d.n, err)
	}
	d.n++
	l := &loader{
		opts:    d.opts,
		anchors: map[*yaml.Node]*ir.Node{},
	}
	node, err := l.node(&y, 0)
	if err != nil {
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("parsed %s document %d:\n%s", d.name(), d.n-1, encode.MustString(node, encode.AllowMarkers(true)))
	}
	return node, nil
}

// Index is the number of documents decoded so far.
func (d *Decoder) Index() int {
	return d.n
}

func (d *Decoder) name() string {
	if d.opts.docName == "" {
		return "<input>"
	}
	return d.opts.docName
}

type loader struct {
	opts    *parseOpts
	anchors map[*yaml.Node]*ir.Node
}

func (l *loader) pos(y *yaml.Node) *token.Pos {
	return token.New(l.opts.docName, y.Line, y.Column)
}

func (l *loader) node(y *yaml.Node, depth int) (*ir.Node, error) {
	if depth > l.opts.maxDepth {
		return nil, posErr(ErrMaxDepth, l.pos(y), "limit %d", l.opts.maxDepth)
	}
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return ir.Null().WithPos(l.pos(y), l.pos(y)), nil
		}
		return l.node(y.Content[0], depth)
	case yaml.AliasNode:
		if y.Alias == nil {
			return nil, posErr(errInternal, l.pos(y), "alias without target")
		}
		if res, ok := l.anchors[y.Alias]; ok {
			return res, nil
		}
		return l.node(y.Alias, depth)
	}
	var (
		res *ir.Node
		err error
	)
	if sym := l.opts.symbols[y.Tag]; sym != nil {
		res, err = l.marker(y, sym, depth)
	} else {
		res, err = l.plain(y, depth)
	}
	if err != nil {
		return nil, err
	}
	if y.Anchor != "" {
		l.anchors[y] = res
	}
	return res, nil
}

func (l *loader) plain(y *yaml.Node, depth int) (*ir.Node, error) {
	switch y.Kind {
	case yaml.ScalarNode:
		return l.scalar(y), nil
	case yaml.SequenceNode:
		return l.sequence(y, depth)
	case yaml.MappingNode:
		return l.mapping(y, depth)
	}
	return nil, posErr(errInternal, l.pos(y), "unknown yaml node kind %d", y.Kind)
}

func (l *loader) marker(y *yaml.Node, sym marker.Symbol, depth int) (*ir.Node, error) {
	var (
		name *ir.Node
		err  error
	)
	if y.Kind == yaml.ScalarNode {
		start := l.pos(y)
		name = ir.FromString(y.Value).WithPos(start, scalarEnd(start, y))
	} else {
		bare := *y
		bare.Tag = ""
		bare.Anchor = ""
		name, err = l.plain(&bare, depth+1)
		if err != nil {
			return nil, err
		}
	}
	m, err := sym.Instance(name)
	if err != nil {
		return nil, posErr(ErrBadMarker, l.pos(y), "%s", err)
	}
	return ir.FromMarker(m, y.Tag).WithPos(l.pos(y), name.End), nil
}

func (l *loader) sequence(y *yaml.Node, depth int) (*ir.Node, error) {
	res := &ir.Node{
		Type:   ir.ArrayType,
		Tag:    userTag(y),
		Values: make([]*ir.Node, 0, len(y.Content)),
		Start:  l.pos(y),
	}
	for _, yy := range y.Content {
		v, err := l.node(yy, depth+1)
		if err != nil {
			return nil, err
		}
		res.Values = append(res.Values, v)
	}
	res.End = containerEnd(res)
	return res, nil
}

func (l *loader) mapping(y *yaml.Node, depth int) (*ir.Node, error) {
	n := len(y.Content) / 2
	res := &ir.Node{
		Type:   ir.ObjectType,
		Tag:    userTag(y),
		Fields: make([]*ir.Node, 0, n),
		Values: make([]*ir.Node, 0, n),
		Start:  l.pos(y),
	}
	for i := 0; i+1 < len(y.Content); i += 2 {
		k, err := l.node(y.Content[i], depth+1)
		if err != nil {
			return nil, err
		}
		if j := res.Index(k); j >= 0 {
			return nil, posErr(ErrDuplicateKey, k.Start, "%q first defined at %s", k.ScalarText(), res.Fields[j].Start)
		}
		v, err := l.node(y.Content[i+1], depth+1)
		if err != nil {
			return nil, err
		}
		res.Fields = append(res.Fields, k)
		res.Values = append(res.Values, v)
	}
	res.End = containerEnd(res)
	return res, nil
}

func (l *loader) scalar(y *yaml.Node) *ir.Node {
	start := l.pos(y)
	res := &ir.Node{Start: start, End: scalarEnd(start, y)}
	v := y.Value
	switch y.ShortTag() {
	case "!!null":
		res.Type = ir.NullType
	case "!!bool":
		res.Type = ir.BoolType
		res.Bool = strings.EqualFold(v, "true")
	case "!!int":
		res.Type = ir.NumberType
		clean := strings.ReplaceAll(v, "_", "")
		if i, err := strconv.ParseInt(clean, 0, 64); err == nil {
			res.Int64 = &i
		} else {
			res.Number = v
		}
	case "!!float":
		res.Type = ir.NumberType
		if f, ok := parseFloat(v); ok {
			res.Float64 = &f
		} else {
			res.Number = v
		}
	default:
		res.Type = ir.StringType
		res.String = v
		res.Tag = userTag(y)
	}
	return res
}

func parseFloat(v string) (float64, bool) {
	switch strings.ToLower(strings.TrimPrefix(v, "+")) {
	case ".inf":
		return math.Inf(1), true
	case "-.inf":
		return math.Inf(-1), true
	case ".nan":
		return math.NaN(), true
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, "_", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// userTag keeps tags that are not implied by the node's kind and value.
func userTag(y *yaml.Node) string {
	switch y.ShortTag() {
	case "!!str", "!!int", "!!float", "!!bool", "!!null", "!!seq", "!!map", "!!merge":
		return ""
	case "!!timestamp":
		if y.Style&yaml.TaggedStyle == 0 {
			return ""
		}
	}
	return y.Tag
}

func scalarEnd(start *token.Pos, y *yaml.Node) *token.Pos {
	if strings.Contains(y.Value, "\n") || y.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return nil
	}
	n := len(y.Value)
	if y.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle) != 0 {
		n += 2
	}
	return start.Advance(n)
}

func containerEnd(n *ir.Node) *token.Pos {
	if len(n.Values) == 0 {
		return n.Start
	}
	last := n.Values[len(n.Values)-1]
	if last.End.Known() {
		return last.End
	}
	return last.Start
}
