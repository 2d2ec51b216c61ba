// Package transclude splices assembly values into a template.
//
// A transclusion takes one of two forms:
//
//	Buckets: !Transclude Buckets
//
//	Tags:
//	  !Transclude CommonTags:
//	    - {Key: Owner, Value: ops}
//
// The first is replaced by the value registered under the name and fails
// with ErrUnknownAssembly when there is none. The second carries a local
// value: when the name is not registered the local value is used, a null
// local value is replaced by the registered one, and otherwise a new
// sequence or mapping holds the local entries followed by the registered
// ones.
//
// Registered values are spliced by reference and then resolved in turn, so
// an assembly may itself transclude other assemblies.
package transclude
