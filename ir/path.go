package ir

import (
	"strconv"
	"strings"
)

// Nodes carry no parent links since one node may be spliced at several
// places, so paths are built by the walker as it descends.

const RootPath = "$"

// PathField extends a JSONPath-style path with an object field.
func PathField(prefix string, field *Node) string {
	f := field.ScalarText()
	if f != "" && strings.IndexAny(f, "'.*$[] ") == -1 {
		return prefix + "." + f
	}
	return prefix + ".'" + strings.Replace(f, "'", "\\'", -1) + "'"
}

// PathIndex extends a JSONPath-style path with an array index.
func PathIndex(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}
