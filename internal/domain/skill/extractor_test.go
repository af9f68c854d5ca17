package skill

import (
	"reflect"
	"testing"
)

func testVocabulary() []string {
	return []string{
		"Java", "JavaScript", "Go", "SQL", "PostgreSQL", "C++", "C#",
		"Node.js", "CI/CD", "Machine Learning", "Docker", "Kubernetes", "Scrum",
	}
}

func TestExtract_WordBoundaries(t *testing.T) {
	e := NewExtractor(testVocabulary())

	got := e.Extract("Built Google integrations in JavaScript backed by PostgreSQL.")
	want := []string{"JavaScript", "PostgreSQL"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtract_SymbolsAndMultiWordTerms(t *testing.T) {
	e := NewExtractor(testVocabulary())

	got := e.Extract("Wrote C++ and C# services, shipped with CI/CD on node.js; studied machine learning")
	want := []string{"C#", "C++", "CI/CD", "Machine Learning", "Node.js"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtract_ListingPatterns(t *testing.T) {
	e := NewExtractor(testVocabulary())

	text := "Summary\nSkills:docker, kubernetes | sql\n• Scrum\n- Go\nProficient in: Java"
	got := e.Extract(text)
	want := []string{"Docker", "Go", "Java", "Kubernetes", "Scrum", "SQL"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtract_ListingItemWithoutBoundary(t *testing.T) {
	e := NewExtractor([]string{"Python"})

	got := e.Extract("Languagespython")
	if !reflect.DeepEqual(got, []string{"Python"}) {
		t.Fatalf("expected listing item to be picked up, got %v", got)
	}
}

func TestExtract_SortedAndDeduplicated(t *testing.T) {
	e := NewExtractor([]string{"Docker", "docker", " ", "AWS", "Ansible"})
	if e.Len() != 3 {
		t.Fatalf("expected 3 distinct terms, got %d", e.Len())
	}

	got := e.Extract("docker, DOCKER and Docker on aws with ansible. Skills: Docker")
	want := []string{"Ansible", "AWS", "Docker"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtract_NoMatches(t *testing.T) {
	e := NewExtractor(testVocabulary())

	for _, text := range []string{"", "   ", "Enjoys gardening and javelin"} {
		got := e.Extract(text)
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil result for %q, got %v", text, got)
		}
	}
}
