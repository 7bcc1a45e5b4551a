package service

import "strings"

// SkillService serves the read-only skills lookup list. The list is injected
// at construction so nothing mutates shared state at runtime.
type SkillService struct {
	skills []string
}

func NewSkillService(skills []string) *SkillService {
	owned := make([]string, len(skills))
	copy(owned, skills)
	return &SkillService{skills: owned}
}

// Search returns the skills containing the query, case-insensitively. An
// empty query returns the full list.
func (s *SkillService) Search(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]string, len(s.skills))
		copy(out, s.skills)
		return out
	}

	out := make([]string, 0, len(s.skills))
	for _, skill := range s.skills {
		if strings.Contains(strings.ToLower(skill), query) {
			out = append(out, skill)
		}
	}
	return out
}
