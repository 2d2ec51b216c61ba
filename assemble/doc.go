// Package assemble resolves assemblies.
//
// An assembly is a single-entry mapping whose key is an assembly point:
//
//	Resources:
//	  !Assembly Buckets:
//	    - bucket-a
//
// ResolveAssemblies walks a document, merges the value of each assembly into
// a Registry under the assembly's name and writes the registry's node back
// in place of the assembly. The same Registry may be threaded through every
// document of a stream, so that the values of one name are merged across
// documents:
//
//   - a new name records the value as is;
//   - a sequence is extended in place with the elements of the new value;
//   - a mapping receives the entries of the new value, which must not
//     repeat any of its keys;
//   - any other value can not be merged, even with an identical one.
//
// Every slot that held an assembly of a given name refers to the same node
// afterwards, so later merges are visible at all of them.
//
// Failures are reported as *Error, matching one of the Err sentinels with
// errors.Is. Resolution stops at the first failure and the registry keeps
// the merges made before it; Registry.Checkpoint and Registry.Rollback undo
// them for callers that need a document to apply all or nothing.
package assemble
