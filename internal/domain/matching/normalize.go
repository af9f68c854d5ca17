package matching

import "strings"

// Normalize is the single identity rule for skills: trimmed and lower-cased.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SkillSet is an ordered list of user supplied skills.
type SkillSet []string

// Clean drops blank entries and trims the rest, keeping order and casing.
func (s SkillSet) Clean() SkillSet {
	out := make(SkillSet, 0, len(s))
	for _, it := range s {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Lookup returns the normalized membership set.
func (s SkillSet) Lookup() map[string]struct{} {
	m := make(map[string]struct{}, len(s))
	for _, it := range s {
		n := Normalize(it)
		if n == "" {
			continue
		}
		m[n] = struct{}{}
	}
	return m
}

func (s SkillSet) Text() string {
	return strings.Join(s, " ")
}
