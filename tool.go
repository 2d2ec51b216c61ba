package assemyaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/assemyaml/assemyaml/assemble"
	"github.com/assemyaml/assemyaml/debug"
	"github.com/assemyaml/assemyaml/encode"
	"github.com/assemyaml/assemyaml/format"
	"github.com/assemyaml/assemyaml/ir"
	"github.com/assemyaml/assemyaml/parse"
	"github.com/assemyaml/assemyaml/transclude"
)

var (
	ErrNoTemplate         = errors.New("template has no document")
	ErrOrphanedAssemblies = errors.New("assemblies not transcluded")
)

// Tool assembles a template from resource documents.
type Tool struct {
	// LocalTags enables the "!Assembly" and "!Transclude" spellings.
	LocalTags bool
	Format    format.Format
	// Patches are applied in order to the assembled document.
	Patches []*Patch
	// Strict fails when an assembly is never transcluded.
	Strict bool
	// Indent is the YAML indentation width; zero means the encoder's
	// default.
	Indent int
	Log    *slog.Logger
}

func DefaultTool() *Tool {
	return &Tool{Log: discardLogger()}
}

func (t *Tool) log() *slog.Logger {
	if t.Log == nil {
		return discardLogger()
	}
	return t.Log
}

func (t *Tool) recordOpts(name string) []RecordOption {
	return []RecordOption{DocName(name), LocalTags(t.LocalTags), Logger(t.log())}
}

// Assemble records the assemblies of the template's first document and of
// every resource document, in that order, then resolves the transclusions
// of the template and applies the patches.
func (t *Tool) Assemble(template Input, resources ...Input) (*ir.Node, error) {
	reg := assemble.NewRegistry()
	dec := parse.NewDecoder(bytes.NewReader(template.Data),
		parse.DocName(template.Name), parse.LocalTags(t.LocalTags))
	doc, err := dec.Decode()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", ErrNoTemplate, streamName(template.Name))
	}
	if err != nil {
		return nil, err
	}
	doc, err = assemble.Resolve(doc, reg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", streamName(template.Name), err)
	}
	for _, res := range resources {
		docs, err := RecordAssemblies(bytes.NewReader(res.Data), reg, t.recordOpts(res.Name)...)
		if err != nil {
			return nil, err
		}
		t.log().Debug("recorded resources", "doc", streamName(res.Name), "documents", len(docs), "assemblies", reg.Len())
	}

	tr := transclude.NewResolver(reg)
	doc, err = tr.Resolve(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", streamName(template.Name), err)
	}
	if orphans := tr.Unreferenced(); len(orphans) != 0 {
		names := make([]string, len(orphans))
		for i, o := range orphans {
			names[i] = o.ScalarText()
		}
		if t.Strict {
			return nil, fmt.Errorf("%w: %v", ErrOrphanedAssemblies, names)
		}
		t.log().Warn("assemblies not transcluded", "names", names)
	}
	for _, p := range t.Patches {
		doc, err = p.Apply(doc)
		if err != nil {
			return nil, err
		}
	}
	if debug.Job() {
		debug.Logf("assembled %s:\n%s", streamName(template.Name), encode.MustString(doc))
	}
	return doc, nil
}

// Render encodes node in the tool's format.
func (t *Tool) Render(node *ir.Node, w io.Writer) error {
	return encode.Encode(node, w, t.EncodeOptions()...)
}

func (t *Tool) EncodeOptions() []encode.EncodeOption {
	opts := []encode.EncodeOption{encode.EncodeFormat(t.Format)}
	if t.Indent > 0 {
		opts = append(opts, encode.Indent(t.Indent))
	}
	return opts
}
