// Package libdiff computes and prints line diffs between two renderings of
// a document, such as a template before and after assembly.
package libdiff
