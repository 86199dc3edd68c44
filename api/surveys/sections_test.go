package surveys_test

import (
	"testing"

	"github.com/Adedunmol/questino/api/surveys"
	"github.com/google/go-cmp/cmp"
)

func q(id, kind string) surveys.Question {
	return surveys.Question{ID: id, Type: kind}
}

func section(id, title string) surveys.Question {
	return surveys.Question{ID: id, Type: surveys.TypeSection, SectionTitle: title}
}

func titles(sections []surveys.Section) [][]string {
	var out [][]string
	for _, s := range sections {
		group := []string{s.Title}
		for _, question := range s.Questions {
			group = append(group, question.ID)
		}
		out = append(out, group)
	}
	return out
}

func TestBuildSections(t *testing.T) {
	tests := []struct {
		name      string
		questions []surveys.Question
		want      [][]string
	}{
		{
			name:      "no questions",
			questions: nil,
			want:      nil,
		},
		{
			name:      "no markers puts everything in section 1",
			questions: []surveys.Question{q("a", "text"), q("b", "scale")},
			want:      [][]string{{"Section 1", "a", "b"}},
		},
		{
			name: "markers split groups and keep titles",
			questions: []surveys.Question{
				q("a", "text"),
				section("s1", "About you"),
				q("b", "mcq"),
				section("s2", ""),
				q("c", "slider"),
			},
			want: [][]string{{"Section 1", "a"}, {"About you", "b"}, {"Section 3", "c"}},
		},
		{
			name:      "leading marker replaces the default group",
			questions: []surveys.Question{section("s1", "Intro"), q("a", "text")},
			want:      [][]string{{"Intro", "a"}},
		},
		{
			name:      "only markers fall back to a single questions group",
			questions: []surveys.Question{section("s1", "Intro")},
			want:      [][]string{{"Questions", "s1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(surveys.BuildSections(tt.questions))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BuildSections() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
