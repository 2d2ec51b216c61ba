package assemble

import (
	"github.com/assemyaml/assemyaml/debug"
	"github.com/assemyaml/assemyaml/ir"
	"github.com/assemyaml/assemyaml/marker"
)

// ResolveAssemblies finds every assembly in node, merges its value into reg
// and replaces the assembly by the merged value in place. When node itself
// is an assembly its value is recorded but node is left as is; use Resolve
// to obtain the replacement root.
func ResolveAssemblies(node *ir.Node, reg *Registry) error {
	_, err := Resolve(node, reg)
	return err
}

// Resolve is ResolveAssemblies treating node as a slot of its own: it
// returns the node that takes the place of the root.
func Resolve(node *ir.Node, reg *Registry) (*ir.Node, error) {
	w := &walker{reg: reg, active: map[*ir.Node]bool{}}
	res, err := w.slot(node, ir.RootPath)
	if err != nil {
		return nil, err
	}
	if err := w.walk(res, ir.RootPath); err != nil {
		return nil, err
	}
	return res, nil
}

type walker struct {
	reg *Registry
	// containers being walked, to catch values that contain themselves.
	active map[*ir.Node]bool
}

func (w *walker) walk(node *ir.Node, path string) error {
	switch node.Type {
	case ir.ArrayType, ir.ObjectType:
	default:
		return nil
	}
	if w.active[node] {
		return newError(ErrRecursiveAssembly, path, markAt("Assembly value contains itself at", node))
	}
	w.active[node] = true
	defer delete(w.active, node)

	n := len(node.Values)
	for i := 0; i < n; i++ {
		var p string
		if node.Type == ir.ArrayType {
			p = ir.PathIndex(path, i)
		} else {
			p = ir.PathField(path, node.Fields[i])
		}
		v, err := w.slot(node.Values[i], p)
		if err != nil {
			return err
		}
		node.Values[i] = v
		if err := w.walk(v, p); err != nil {
			return err
		}
	}
	return nil
}

// slot returns the value that belongs at a slot currently holding v: v
// itself, or the merged value of the assembly v declares.
func (w *walker) slot(v *ir.Node, path string) (*ir.Node, error) {
	key, _ := marker.MarkerKey(v, marker.IsAssemblyPoint)
	if key == nil {
		return v, nil
	}
	if len(v.Fields) != 1 {
		return nil, newError(ErrMalformedAssembly, path,
			markAt("Assembly must be a single-entry mapping", v))
	}
	a, _ := marker.AsAssemblyPoint(key)
	name := a.AssemblyName()
	if name == nil || !name.Type.IsLeaf() {
		return nil, newError(ErrInvalidAssemblyName, path,
			markAt("Assembly name must be a scalar", name))
	}
	res, err := w.reg.merge(name, v.Values[0], path)
	if err != nil {
		return nil, err
	}
	if debug.Assemble() {
		debug.Logf("assembly %s at %s: %s\n", name.ScalarText(), path, TypeName(res))
	}
	return res, nil
}
