package utils

import "strings"

// SplitSkills turns the stored comma-delimited skills field into a list.
// An empty field yields an empty list, not [""].
func SplitSkills(skills string) []string {
	if strings.TrimSpace(skills) == "" {
		return []string{}
	}

	parts := strings.Split(skills, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

func JoinSkills(skills []string) string {
	trimmed := make([]string, 0, len(skills))

	for _, skill := range skills {
		if s := strings.TrimSpace(skill); s != "" {
			trimmed = append(trimmed, s)
		}
	}

	return strings.Join(trimmed, ",")
}
