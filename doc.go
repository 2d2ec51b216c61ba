// Package assemyaml assembles YAML documents.
//
// Resource documents declare named assemblies with the
// tag:assemyaml.nz,2017:Assembly tag (or "!Assembly" when local tags are
// enabled); values of the same name are merged across all documents. A
// template then pulls the merged values in with
// tag:assemyaml.nz,2017:Transclude ("!Transclude").
//
//	tool := &assemyaml.Tool{LocalTags: true, Format: format.JSONFormat}
//	doc, err := tool.Assemble(template, resources...)
//	if err != nil {
//	    return err
//	}
//	return tool.Render(doc, os.Stdout)
//
// RecordAssemblies exposes the recording pass on its own. Packages
// assemble and transclude hold the resolution rules.
package assemyaml
