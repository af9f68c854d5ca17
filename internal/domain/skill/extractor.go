package skill

import (
	"regexp"
	"sort"
	"strings"
)

var (
	listingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:skills?|technologies?|tools?|languages?)[:\s]*([^\n.]+)`),
		regexp.MustCompile(`(?i)(?:experienced in|skilled in|proficient in|knowledge of)[:\s]*([^\n.]+)`),
		regexp.MustCompile(`•\s*([^•\n]+)`),
		regexp.MustCompile(`-\s*([^-\n]+)`),
	}
	itemSeparator = regexp.MustCompile(`[,;|&]`)
)

// Extractor finds known skills in free text. Safe for concurrent use.
type Extractor struct {
	terms []term
	names map[string]string
}

type term struct {
	name string
	re   *regexp.Regexp
}

// NewExtractor builds an extractor over the given vocabulary. Terms are
// compared case-insensitively; the first spelling of a term is the one reported.
func NewExtractor(vocabulary []string) *Extractor {
	e := &Extractor{names: make(map[string]string, len(vocabulary))}
	for _, v := range vocabulary {
		name := strings.TrimSpace(v)
		key := strings.ToLower(name)
		if key == "" {
			continue
		}
		if _, dup := e.names[key]; dup {
			continue
		}
		e.names[key] = name
		e.terms = append(e.terms, term{name: name, re: mentionPattern(key)})
	}
	return e
}

// Len is the number of distinct vocabulary terms.
func (e *Extractor) Len() int {
	return len(e.terms)
}

// Extract returns the vocabulary terms mentioned in text, sorted
// case-insensitively and without duplicates. A term counts when it appears
// on word boundaries, or when it is exactly one item of a listing such as
// "Skills: Go, SQL" or a bullet point.
func (e *Extractor) Extract(text string) []string {
	out := []string{}
	if strings.TrimSpace(text) == "" {
		return out
	}

	found := make(map[string]struct{})
	for _, t := range e.terms {
		if t.re.MatchString(text) {
			found[t.name] = struct{}{}
		}
	}

	for _, re := range listingPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			for _, item := range itemSeparator.Split(m[1], -1) {
				if name, ok := e.names[strings.ToLower(strings.TrimSpace(item))]; ok {
					found[name] = struct{}{}
				}
			}
		}
	}

	for name := range found {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i]), strings.ToLower(out[j])
		if li != lj {
			return li < lj
		}
		return out[i] < out[j]
	})
	return out
}

// mentionPattern matches key with no letter or digit on either side, so
// "java" does not match inside "javascript" while "c++" still matches.
func mentionPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(^|[^a-z0-9])` + regexp.QuoteMeta(key) + `([^a-z0-9]|$)`)
}
