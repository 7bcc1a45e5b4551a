package service

import (
	"reflect"
	"testing"
)

func TestSkillSearch(t *testing.T) {
	svc := NewSkillService([]string{"Go", "JavaScript", "Java", "SQL", "Machine Learning"})

	cases := []struct {
		query string
		want  []string
	}{
		{"", []string{"Go", "JavaScript", "Java", "SQL", "Machine Learning"}},
		{"  ", []string{"Go", "JavaScript", "Java", "SQL", "Machine Learning"}},
		{"java", []string{"JavaScript", "Java"}},
		{"LEARN", []string{"Machine Learning"}},
		{"rust", []string{}},
	}

	for _, tc := range cases {
		if got := svc.Search(tc.query); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Search(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestSkillServiceCopiesItsList(t *testing.T) {
	source := []string{"Go", "SQL"}
	svc := NewSkillService(source)
	source[0] = "mutated"

	if got := svc.Search(""); got[0] != "Go" {
		t.Fatalf("service must own its list, got %v", got)
	}

	got := svc.Search("")
	got[0] = "mutated"
	if again := svc.Search(""); again[0] != "Go" {
		t.Fatalf("callers must not share the backing array, got %v", again)
	}
}
