package transclude

import (
	"errors"
	"fmt"

	"github.com/assemyaml/assemyaml/assemble"
	"github.com/assemyaml/assemyaml/debug"
	"github.com/assemyaml/assemyaml/ir"
	"github.com/assemyaml/assemyaml/marker"
)

var (
	ErrUnknownAssembly       = errors.New("unknown assembly")
	ErrMalformedTransclusion = errors.New("malformed transclusion")
	ErrRecursiveTransclusion = errors.New("recursive transclusion")
)

// Resolve replaces the transclusions in node by values of reg and returns
// the node that takes the place of the root.
func Resolve(node *ir.Node, reg *assemble.Registry) (*ir.Node, error) {
	return NewResolver(reg).Resolve(node)
}

// Resolver resolves transclusions against one registry and remembers which
// names were transcluded.
type Resolver struct {
	reg    *assemble.Registry
	used   *assemble.Registry
	active map[*ir.Node]bool
}

func NewResolver(reg *assemble.Registry) *Resolver {
	return &Resolver{
		reg:    reg,
		used:   assemble.NewRegistry(),
		active: map[*ir.Node]bool{},
	}
}

func (r *Resolver) Resolve(node *ir.Node) (*ir.Node, error) {
	res, err := r.slot(node, ir.RootPath)
	if err != nil {
		return nil, err
	}
	if err := r.walk(res, ir.RootPath); err != nil {
		return nil, err
	}
	return res, nil
}

// Referenced lists the names transcluded so far, in first use order.
func (r *Resolver) Referenced() []*ir.Node {
	return r.used.Names()
}

// Unreferenced lists the registered names that no transclusion used.
func (r *Resolver) Unreferenced() []*ir.Node {
	res := []*ir.Node{}
	for name := range r.reg.All() {
		if _, ok := r.used.Get(name); !ok {
			res = append(res, name)
		}
	}
	return res
}

func (r *Resolver) walk(node *ir.Node, path string) error {
	if node.Type != ir.ArrayType && node.Type != ir.ObjectType {
		return nil
	}
	if r.active[node] {
		return fmt.Errorf("%w at %s (%s)", ErrRecursiveTransclusion, node.Start, path)
	}
	r.active[node] = true
	defer delete(r.active, node)

	for i := range node.Values {
		var p string
		if node.Type == ir.ArrayType {
			p = ir.PathIndex(path, i)
		} else {
			p = ir.PathField(path, node.Fields[i])
		}
		v, err := r.slot(node.Values[i], p)
		if err != nil {
			return err
		}
		node.Values[i] = v
		if err := r.walk(v, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) slot(v *ir.Node, path string) (*ir.Node, error) {
	if tp, ok := marker.AsTranscludePoint(v); ok {
		name, err := r.name(tp, v, path)
		if err != nil {
			return nil, err
		}
		res, ok := r.reg.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w %s at %s (%s)", ErrUnknownAssembly, name.ScalarText(), v.Start, path)
		}
		r.trace(name, path, "splice")
		return res, nil
	}
	key, _ := marker.MarkerKey(v, marker.IsTranscludePoint)
	if key == nil {
		return v, nil
	}
	if len(v.Fields) != 1 {
		return nil, fmt.Errorf("%w: transclusion must be a single-entry mapping at %s (%s)",
			ErrMalformedTransclusion, v.Start, path)
	}
	tp, _ := marker.AsTranscludePoint(key)
	name, err := r.name(tp, key, path)
	if err != nil {
		return nil, err
	}
	local := v.Values[0]
	res, ok := r.reg.Get(name)
	switch {
	case !ok:
		r.trace(name, path, "local only")
		return local, nil
	case local.Type == ir.NullType:
		r.trace(name, path, "splice")
		return res, nil
	}
	r.trace(name, path, "combine")
	return combine(name, local, res, path)
}

func (r *Resolver) name(tp marker.Transcluder, at *ir.Node, path string) (*ir.Node, error) {
	name := tp.TranscludeName()
	if name == nil || !name.Type.IsLeaf() {
		return nil, fmt.Errorf("%w: transclusion name must be a scalar at %s (%s)",
			ErrMalformedTransclusion, at.Start, path)
	}
	if _, ok := r.used.Get(name); !ok {
		r.used.Set(name, at)
	}
	return name, nil
}

func (r *Resolver) trace(name *ir.Node, path, how string) {
	if debug.Transclude() {
		debug.Logf("transclude %s at %s: %s\n", name.ScalarText(), path, how)
	}
}

// combine builds a new container with the entries of local followed by
// those of the registered value. Neither input is modified.
func combine(name, local, reg *ir.Node, path string) (*ir.Node, error) {
	label := name.ScalarText()
	if local.Type != reg.Type || !(local.Type == ir.ArrayType || local.Type == ir.ObjectType) {
		kind := assemble.ErrAssemblyTypeMismatch
		if local.Type == reg.Type {
			kind = assemble.ErrUnmergeableAssembly
		}
		return nil, &assemble.Error{
			Kind: kind,
			Path: path,
			Marks: []assemble.Mark{
				{Msg: fmt.Sprintf("Cannot transclude assembly %s: %s at", label, assemble.TypeName(reg)), Start: reg.Start},
				{Msg: fmt.Sprintf("into %s at", assemble.TypeName(local)), Start: local.Start},
			},
		}
	}
	if local.Type == ir.ArrayType {
		vs := make([]*ir.Node, 0, len(local.Values)+len(reg.Values))
		vs = append(vs, local.Values...)
		vs = append(vs, reg.Values...)
		return ir.FromSlice(vs).WithTag(local.Tag).WithPos(local.Start, local.End), nil
	}
	kvs := make([]ir.KeyVal, 0, len(local.Fields)+len(reg.Fields))
	for i := range local.Fields {
		kvs = append(kvs, ir.KeyVal{Key: local.Fields[i], Val: local.Values[i]})
	}
	for i, k := range reg.Fields {
		if j := local.Index(k); j >= 0 {
			return nil, &assemble.Error{
				Kind: assemble.ErrDuplicateAssemblyKey,
				Path: path,
				Marks: []assemble.Mark{
					{Msg: fmt.Sprintf("Duplicate key %s for transclusion of %s: local value at", k.ScalarText(), label), Start: local.Fields[j].Start},
					{Msg: "assembly value at", Start: k.Start},
				},
			}
		}
		kvs = append(kvs, ir.KeyVal{Key: k, Val: reg.Values[i]})
	}
	return ir.FromKeyVals(kvs).WithTag(local.Tag).WithPos(local.Start, local.End), nil
}
