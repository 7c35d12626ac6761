package gitinspect

import "github.com/bmatcuk/doublestar/v4"

// FilterPaths applies the include/exclude/reinclude glob precedence
// from spec.md §4.A step-order and §8's quantified property:
//
//	{ f ∈ F : (I=∅ or ∃i∈I: f~i) ∧ (∄x∈X: f~x ∨ ∃r∈R: f~r) }
//
// i.e. (1) keep only paths matching an include glob, if any are given;
// (2) drop paths matching an exclude glob; (3) rescue dropped paths
// that match a reinclude glob.
func FilterPaths(paths []string, include, exclude, reinclude []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if len(include) > 0 && !matchesAny(p, include) {
			continue
		}
		if matchesAny(p, exclude) && !matchesAny(p, reinclude) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesAny(path string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, path); ok {
			return true
		}
	}
	return false
}
