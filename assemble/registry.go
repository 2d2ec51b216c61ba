package assemble

import (
	"fmt"
	"iter"
	"strings"

	"github.com/assemyaml/assemyaml/ir"
)

// Registry maps assembly names to their accumulated values in the order the
// names were first seen. Names are compared with ir.SameKey.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	names  []*ir.Node
	values []*ir.Node
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Len() int {
	return len(r.names)
}

func (r *Registry) index(name *ir.Node) int {
	for i, n := range r.names {
		if ir.SameKey(n, name) {
			return i
		}
	}
	return -1
}

// Get returns the value registered for name.
func (r *Registry) Get(name *ir.Node) (*ir.Node, bool) {
	i := r.index(name)
	if i < 0 {
		return nil, false
	}
	return r.values[i], true
}

// Lookup is Get for a plain string name.
func (r *Registry) Lookup(name string) (*ir.Node, bool) {
	return r.Get(ir.FromString(name))
}

// Set registers val under name without merging, replacing any previous
// value.
func (r *Registry) Set(name, val *ir.Node) {
	if i := r.index(name); i >= 0 {
		r.values[i] = val
		return
	}
	r.names = append(r.names, name)
	r.values = append(r.values, val)
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []*ir.Node {
	res := make([]*ir.Node, len(r.names))
	copy(res, r.names)
	return res
}

func (r *Registry) All() iter.Seq2[*ir.Node, *ir.Node] {
	return func(yield func(*ir.Node, *ir.Node) bool) {
		for i := range r.names {
			if !yield(r.names[i], r.values[i]) {
				return
			}
		}
	}
}

// Node returns the registry as an object node. The values are shared with
// the registry.
func (r *Registry) Node() *ir.Node {
	kvs := make([]ir.KeyVal, len(r.names))
	for i := range r.names {
		kvs[i] = ir.KeyVal{Key: r.names[i], Val: r.values[i]}
	}
	return ir.FromKeyVals(kvs)
}

// Merge merges every entry of other into r with the same rules that apply
// to assemblies met during resolution. It stops at the first conflict.
//
// Splice points resolved against other keep referring to other's values, so
// Merge is meant for registries built independently, for example one per
// goroutine.
func (r *Registry) Merge(other *Registry) error {
	for i := range other.names {
		if _, err := r.merge(other.names[i], other.values[i], ""); err != nil {
			return err
		}
	}
	return nil
}

// Checkpoint records the extent of the registry and of each of its values.
type Checkpoint struct {
	n      int
	values []*ir.Node
	sizes  []int
}

func (r *Registry) Checkpoint() *Checkpoint {
	cp := &Checkpoint{
		n:      len(r.names),
		values: make([]*ir.Node, len(r.values)),
		sizes:  make([]int, len(r.values)),
	}
	copy(cp.values, r.values)
	for i, v := range r.values {
		cp.sizes[i] = len(v.Values)
	}
	return cp
}

// Rollback undoes registrations and merges made since cp. Merges only ever
// append to registered values, so truncating them restores their contents
// while keeping every splice point that refers to them.
func (r *Registry) Rollback(cp *Checkpoint) {
	clear(r.names[cp.n:])
	clear(r.values[cp.n:])
	r.names = r.names[:cp.n]
	r.values = r.values[:cp.n]
	for i, v := range cp.values {
		r.values[i] = v
		n := cp.sizes[i]
		if len(v.Values) > n {
			v.Values = v.Values[:n]
		}
		if len(v.Fields) > n {
			v.Fields = v.Fields[:n]
		}
	}
}

// merge folds val into the entry for name and returns the node that now
// holds the name's value.
func (r *Registry) merge(name, val *ir.Node, path string) (*ir.Node, error) {
	i := r.index(name)
	if i < 0 {
		r.names = append(r.names, name)
		r.values = append(r.values, val)
		return val, nil
	}
	cur := r.values[i]
	if cur == val {
		return cur, nil
	}
	label := name.ScalarText()
	switch cur.Type {
	case ir.ArrayType:
		if val.Type != ir.ArrayType {
			return nil, newError(ErrAssemblyTypeMismatch, path,
				startAt(fmt.Sprintf("Mismatched assembly types for %s: list at", label), cur),
				startAt(fmt.Sprintf("%s at", TypeName(val)), val))
		}
		cur.Values = append(cur.Values, val.Values...)
	case ir.ObjectType:
		if val.Type != ir.ObjectType {
			return nil, newError(ErrAssemblyTypeMismatch, path,
				startAt(fmt.Sprintf("Mismatched assembly types for %s: dict at", label), cur),
				startAt(fmt.Sprintf("%s at", TypeName(val)), val))
		}
		for _, k := range val.Fields {
			if cur.Index(k) < 0 {
				continue
			}
			return nil, newError(ErrDuplicateAssemblyKey, path,
				startAt(fmt.Sprintf("Duplicate key %s for assembly %s: first occurence at", keyRepr(k), label), cur),
				startAt("second occurrence at", val))
		}
		cur.Fields = append(cur.Fields, val.Fields...)
		cur.Values = append(cur.Values, val.Values...)
	default:
		return nil, newError(ErrUnmergeableAssembly, path,
			startAt(fmt.Sprintf("Cannot set value for assembly %s: %s at", label, TypeName(cur)), cur),
			startAt(fmt.Sprintf("%s at", TypeName(val)), val))
	}
	return cur, nil
}

func keyRepr(k *ir.Node) string {
	if k.Type == ir.StringType {
		return "'" + strings.ReplaceAll(k.String, "'", `\'`) + "'"
	}
	return k.ScalarText()
}
