// Package artifact runs assembly jobs over zip archives. Input artifacts
// are named archives; files inside them are referenced as
// artifact::filename. The result is written as a zip holding a single file.
package artifact
