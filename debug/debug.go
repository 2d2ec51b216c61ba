package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse      bool
	Assemble   bool
	Transclude bool
	Job        bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("ASSEMYAML_DEBUG_PARSE")
	d.Assemble = boolEnv("ASSEMYAML_DEBUG_ASSEMBLE")
	d.Transclude = boolEnv("ASSEMYAML_DEBUG_TRANSCLUDE")
	d.Job = boolEnv("ASSEMYAML_DEBUG_JOB")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Assemble() bool {
	return d.Assemble
}
func Transclude() bool {
	return d.Transclude
}
func Job() bool {
	return d.Job
}
