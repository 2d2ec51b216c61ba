// Package encode renders ir nodes as YAML or JSON.
//
// YAML output keeps tags that are not implied by a value, so that
// pass-through tags such as "!Ref" or "!GetAtt" survive, and quotes strings
// that would otherwise read back as another type. JSON output keeps the key
// order of mappings and drops tags.
//
// Markers have no rendering of their own: a tree that still contains one is
// an error unless AllowMarkers is given.
package encode
