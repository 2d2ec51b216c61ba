// Package params reads the user parameters of an assembly job: which
// artifact files hold the template and the resources, and how the result
// is written.
package params
