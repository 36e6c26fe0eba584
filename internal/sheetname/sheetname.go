// Package sheetname derives worksheet names from meter locations.
package sheetname

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxLength is the longest sheet name a workbook accepts.
const MaxLength = 31

var locationReplacer = strings.NewReplacer(
	" ", "_",
	"(", "",
	")", "",
	"&", "AND",
	"-", "_",
	":", "",
	"\\", "",
	"/", "",
	"?", "",
	"*", "",
	"[", "",
	"]", "",
	"'", "",
	"\"", "",
)

// characters a workbook refuses in any sheet name
var forbiddenReplacer = strings.NewReplacer(
	":", "",
	"\\", "",
	"/", "",
	"?", "",
	"*", "",
	"[", "",
	"]", "",
)

// Clean uppercases a location and replaces everything that is not safe in a
// sheet name.
func Clean(location string) string {
	return locationReplacer.Replace(strings.ToUpper(location))
}

// Derive builds "<prefix>_<CLEANED LOCATION>" capped at MaxLength runes with
// outer underscores trimmed. index is the 1-based position of the record and
// is only used when nothing usable is left.
func Derive(prefix, location string, index int) string {
	prefix = forbiddenReplacer.Replace(prefix)
	name := finish(prefix + "_" + Clean(location))
	if name == "" {
		name = truncate(fmt.Sprintf("%s_Sheet%d", prefix, index), MaxLength)
	}
	return name
}

func finish(name string) string {
	return strings.Trim(truncate(name, MaxLength), "_")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Registry hands out names that are unique within one workbook.
type Registry struct {
	used map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{used: make(map[string]bool)}
}

// Claim returns name, or name with a numeric suffix if it was already taken.
// Names are compared case-insensitively, as workbooks do.
func (r *Registry) Claim(name string) string {
	candidate := name
	for n := 2; r.used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf("_%d", n)
		candidate = truncate(name, MaxLength-utf8.RuneCountInString(suffix)) + suffix
	}
	r.used[strings.ToLower(candidate)] = true
	return candidate
}
