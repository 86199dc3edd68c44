package surveys

import "fmt"

type Section struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
}

// BuildSections groups ordered questions into the pages a respondent walks
// through. Each section marker closes the current group and opens a new one.
// Markers are numbered by position, so untitled groups may skip numbers when
// an earlier group ended up empty.
func BuildSections(questions []Question) []Section {
	var sections []Section
	current := Section{Title: "Section 1"}
	index := 1

	for _, q := range questions {
		if q.Type != TypeSection {
			current.Questions = append(current.Questions, q)
			continue
		}

		if len(current.Questions) > 0 {
			sections = append(sections, current)
		}

		index++
		title := q.SectionTitle
		if title == "" {
			title = fmt.Sprintf("Section %d", index)
		}
		current = Section{Title: title, Description: q.SectionDescription}
	}

	if len(current.Questions) > 0 {
		sections = append(sections, current)
	}

	if len(sections) == 0 && len(questions) > 0 {
		sections = append(sections, Section{Title: "Questions", Questions: questions})
	}

	return sections
}
