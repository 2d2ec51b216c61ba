// Package marker defines the tag markers recognized by the assembly
// preprocessor and the table that binds tag strings to their constructors.
//
// Two marker kinds are built in:
//
//   - Assembly: "!Assembly Name: value" declares a named value that is merged
//     with every other assembly of the same name in a document stream.
//   - Transclude: "!Transclude Name" splices the merged value of the named
//     assembly in place.
//
// Each kind has a global tag, valid across the whole input stream, and a
// local "!Kind" spelling that a loader enables only on request:
//
//	tag:assemyaml.nz,2017:Assembly     !Assembly
//	tag:assemyaml.nz,2017:Transclude   !Transclude
//
// Consumers test markers by capability (IsAssemblyPoint, IsTranscludePoint)
// rather than by concrete type, so new kinds can be registered with Register
// without changing the code that walks documents.
package marker
