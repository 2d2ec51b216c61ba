package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/assemyaml/assemyaml/format"

	"github.com/tidwall/jsonc"
)

var (
	ErrBadParams    = errors.New("bad user parameters")
	ErrBadReference = fmt.Errorf("%w: bad document reference", ErrBadParams)
)

const (
	DefaultInputFilename = "assemble.yml"
	refSep               = "::"
)

// Ref names a file inside an input artifact, written artifact::filename.
type Ref struct {
	Artifact string
	Filename string
}

func (r Ref) String() string {
	return r.Artifact + refSep + r.Filename
}

// ParseRef parses an artifact::filename reference given for param.
func ParseRef(param, s string) (Ref, error) {
	art, file, ok := strings.Cut(s, refSep)
	if !ok || art == "" || file == "" {
		return Ref{}, fmt.Errorf("%w: Invalid value for %s: expected input_artifact::filename: %s",
			ErrBadReference, param, s)
	}
	return Ref{Artifact: art, Filename: file}, nil
}

// Params are the user parameters of an assembly job.
type Params struct {
	// TemplateDocument is nil when the template is the default input file
	// of the first input artifact.
	TemplateDocument *Ref
	// ResourceDocuments is nil when every other input artifact contributes
	// its default input file.
	ResourceDocuments    []Ref
	DefaultInputFilename string
	LocalTags            bool
	Format               format.Format
}

func Default() *Params {
	return &Params{
		DefaultInputFilename: DefaultInputFilename,
		LocalTags:            true,
		Format:               format.YAMLFormat,
	}
}

var known = []string{"TemplateDocument", "ResourceDocuments", "DefaultInputFilename", "LocalTags", "Format"}

// Parse reads user parameters given as a JSON object. Comments and
// trailing commas are allowed.
func Parse(d []byte) (*Params, error) {
	res := Default()
	if strings.TrimSpace(string(d)) == "" {
		return res, nil
	}
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(jsonc.ToJSON(d), &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: Expected a JSON object for user parameters", ErrBadParams)
		}
		return nil, fmt.Errorf("%w: %w", ErrBadParams, err)
	}
	for k := range raw {
		if !slices.Contains(known, k) {
			return nil, fmt.Errorf("%w: Unknown user parameter %s", ErrBadParams, k)
		}
	}
	if v, ok := raw["TemplateDocument"]; ok {
		s, err := str("TemplateDocument", v)
		if err != nil {
			return nil, err
		}
		ref, err := ParseRef("TemplateDocument", s)
		if err != nil {
			return nil, err
		}
		res.TemplateDocument = &ref
	}
	if v, ok := raw["ResourceDocuments"]; ok {
		refs, err := resourceRefs(v)
		if err != nil {
			return nil, err
		}
		res.ResourceDocuments = refs
	}
	if v, ok := raw["DefaultInputFilename"]; ok {
		s, err := str("DefaultInputFilename", v)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, fmt.Errorf("%w: Invalid value for DefaultInputFilename: empty", ErrBadParams)
		}
		res.DefaultInputFilename = s
	}
	if v, ok := raw["LocalTags"]; ok {
		if err := json.Unmarshal(v, &res.LocalTags); err != nil {
			return nil, fmt.Errorf("%w: Invalid value for LocalTags: %s", ErrBadParams, v)
		}
	}
	if v, ok := raw["Format"]; ok {
		s, err := str("Format", v)
		if err != nil {
			return nil, err
		}
		switch s {
		case "json":
			res.Format = format.JSONFormat
		case "yaml":
			res.Format = format.YAMLFormat
		default:
			return nil, fmt.Errorf("%w: Invalid output format '%s': valid types are 'json' and 'yaml'", ErrBadParams, s)
		}
	}
	return res, nil
}

// ReadFile reads user parameters from path, or takes arg itself as the
// parameters when it starts with '{'.
func ReadFile(arg string) (*Params, error) {
	if strings.HasPrefix(strings.TrimSpace(arg), "{") {
		return Parse([]byte(arg))
	}
	d, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", arg, err)
	}
	p, err := Parse(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", arg, err)
	}
	return p, nil
}

func str(param string, v json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", fmt.Errorf("%w: Invalid value for %s: expected a string: %s", ErrBadParams, param, v)
	}
	return s, nil
}

// resourceRefs accepts a list of references or a single one; a string may
// hold several references separated by commas.
func resourceRefs(v json.RawMessage) ([]Ref, error) {
	var list []string
	if err := json.Unmarshal(v, &list); err != nil {
		s, err := str("ResourceDocuments", v)
		if err != nil {
			return nil, err
		}
		list = strings.Split(s, ",")
	}
	res := make([]Ref, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		ref, err := ParseRef("ResourceDocuments", s)
		if err != nil {
			return nil, err
		}
		res = append(res, ref)
	}
	return res, nil
}
