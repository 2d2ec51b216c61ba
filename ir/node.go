package ir

import (
	"strconv"

	"github.com/assemyaml/assemyaml/token"
)

type Node struct {
	Type   Type
	Fields []*Node
	Values []*Node

	Tag    string
	Marker Marker

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64

	Start *token.Pos
	End   *token.Pos
}

func (y *Node) WithTag(tag string) *Node {
	y.Tag = tag
	return y
}

func (y *Node) WithPos(start, end *token.Pos) *Node {
	y.Start = start
	y.End = end
	return y
}

// Clone returns a deep copy of y. Shared subtrees in y are copied once per
// occurrence; markers are shared.
func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Tag = y.Tag
	dst.Marker = y.Marker
	dst.Start = y.Start
	dst.End = y.End
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.Clone()
		}
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, yf := range y.Fields {
			dst.Fields[i] = yf.Clone()
		}
	}
	dst.String = y.String
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{}
	return FromKeyValsAt(res, kvs)
}

func FromKeyValsAt(res *Node, kvs []KeyVal) *Node {
	res.Type = ObjectType
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		if kv.Key == nil {
			kv.Key = Null()
		}
		if kv.Val == nil {
			kv.Val = Null()
		}
		res.Fields[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(ySlice))
	copy(res.Values, ySlice)
	return res
}

func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		f := y.Fields[i]
		if f.Type == StringType && f.Tag == "" && f.String == field {
			return y.Values[i]
		}
	}
	return nil
}

// Len is the number of entries of an object or elements of an array.
func (y *Node) Len() int {
	return len(y.Values)
}

// Index returns the position of key among the fields of object y, or -1.
// Keys are compared with SameKey.
func (y *Node) Index(key *Node) int {
	for i, f := range y.Fields {
		if SameKey(f, key) {
			return i
		}
	}
	return -1
}

// Lookup returns the value associated with key in object y.
func (y *Node) Lookup(key *Node) (*Node, bool) {
	i := y.Index(key)
	if i < 0 {
		return nil, false
	}
	return y.Values[i], true
}

// Set replaces the value for key, or appends a new entry when y has no such
// key. Existing entries keep their position.
func (y *Node) Set(key, val *Node) error {
	if y.Type != ObjectType {
		return ErrNotObject
	}
	if i := y.Index(key); i >= 0 {
		y.Values[i] = val
		return nil
	}
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, val)
	return nil
}

// Append adds elements to the end of array y in place.
func (y *Node) Append(vs ...*Node) error {
	if y.Type != ArrayType {
		return ErrNotArray
	}
	y.Values = append(y.Values, vs...)
	return nil
}

// ScalarText is the textual form of a scalar, used for keys and names in
// messages and in JSON output.
func (y *Node) ScalarText() string {
	switch y.Type {
	case NullType:
		return "null"
	case BoolType:
		return strconv.FormatBool(y.Bool)
	case NumberType:
		switch {
		case y.Int64 != nil:
			return strconv.FormatInt(*y.Int64, 10)
		case y.Float64 != nil:
			return strconv.FormatFloat(*y.Float64, 'g', -1, 64)
		default:
			return y.Number
		}
	case StringType:
		return y.String
	case MarkerType:
		if y.Marker == nil {
			return y.Tag
		}
		name := y.Marker.Name()
		if name == nil {
			return y.Tag
		}
		return y.Tag + " " + name.ScalarText()
	}
	return ""
}
