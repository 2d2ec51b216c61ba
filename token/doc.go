// Package token holds source positions attached to parsed nodes.
//
// Positions are produced by the loader in package parse and are carried by
// every ir.Node so that diagnostics can point back into the input without
// re-parsing it.
package token
