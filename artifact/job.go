package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/assemyaml/assemyaml"
	"github.com/assemyaml/assemyaml/params"
)

var ErrNoInputs = errors.New("no input artifacts")

// Job assembles a template found in the input artifacts and packs the
// result into an output artifact.
type Job struct {
	Params  *params.Params
	Inputs  *Set
	Patches []*assemyaml.Patch
	Log     *slog.Logger
}

// Template resolves the template reference. Without one, the template is
// the default input file of the first artifact.
func (j *Job) Template() (params.Ref, error) {
	if ref := j.Params.TemplateDocument; ref != nil {
		if _, err := j.Inputs.Get("TemplateDocument", *ref); err != nil {
			return params.Ref{}, err
		}
		return *ref, nil
	}
	if j.Inputs.Len() == 0 {
		return params.Ref{}, ErrNoInputs
	}
	return params.Ref{
		Artifact: j.Inputs.Artifacts()[0].Name,
		Filename: j.Params.DefaultInputFilename,
	}, nil
}

// Resources resolves the resource references. Without explicit ones, every
// artifact other than the template's contributes its default input file
// when it has one.
func (j *Job) Resources(template params.Ref) ([]params.Ref, error) {
	if refs := j.Params.ResourceDocuments; refs != nil {
		for _, ref := range refs {
			if _, err := j.Inputs.Get("ResourceDocuments", ref); err != nil {
				return nil, err
			}
		}
		return refs, nil
	}
	res := []params.Ref{}
	for _, a := range j.Inputs.Artifacts() {
		if a.Name == template.Artifact {
			continue
		}
		if !a.Has(j.Params.DefaultInputFilename) {
			j.log().Debug("artifact has no default input", "artifact", a.Name, "filename", j.Params.DefaultInputFilename)
			continue
		}
		res = append(res, params.Ref{Artifact: a.Name, Filename: j.Params.DefaultInputFilename})
	}
	return res, nil
}

// Run assembles the job and writes the output zip to w. The output holds
// one file named like the template.
func (j *Job) Run(w io.Writer) error {
	tmplRef, err := j.Template()
	if err != nil {
		return err
	}
	resRefs, err := j.Resources(tmplRef)
	if err != nil {
		return err
	}
	tmplData, err := j.Inputs.ReadFile("TemplateDocument", tmplRef)
	if err != nil {
		return err
	}
	resources := make([]assemyaml.Input, len(resRefs))
	for i, ref := range resRefs {
		d, err := j.Inputs.ReadFile("ResourceDocuments", ref)
		if err != nil {
			return err
		}
		resources[i] = assemyaml.Input{Name: ref.String(), Data: d}
	}
	tool := &assemyaml.Tool{
		LocalTags: j.Params.LocalTags,
		Format:    j.Params.Format,
		Patches:   j.Patches,
		Log:       j.log(),
	}
	j.log().Info("assembling", "template", tmplRef.String(), "resources", len(resources))
	doc, err := tool.Assemble(assemyaml.Input{Name: tmplRef.String(), Data: tmplData}, resources...)
	if err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	if err := tool.Render(doc, buf); err != nil {
		return fmt.Errorf("rendering %s: %w", tmplRef, err)
	}
	return WriteZip(w, tmplRef.Filename, buf.Bytes())
}

func (j *Job) log() *slog.Logger {
	if j.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return j.Log
}
