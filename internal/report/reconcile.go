package report

import "sort"

// DedupeCompletions collapses retakes: for each questionnaire only the
// attempt with the latest non-nil CompletedAt survives; when no attempt
// carries a timestamp the first encountered one wins. First-encounter order
// of questionnaires is preserved.
func DedupeCompletions(completions []ParsedCompletion) []ParsedCompletion {
	index := make(map[uint]int, len(completions))
	out := make([]ParsedCompletion, 0, len(completions))

	for _, c := range completions {
		i, seen := index[c.QuestionnaireID]
		if !seen {
			index[c.QuestionnaireID] = len(out)
			out = append(out, c)
			continue
		}
		kept := out[i]
		if c.CompletedAt == nil {
			continue
		}
		if kept.CompletedAt == nil || c.CompletedAt.After(*kept.CompletedAt) {
			out[i] = c
		}
	}
	return out
}

// SynthesizeAssignments derives a plan from completion history. It exists for
// accounts that predate explicit assignment records: the report still needs
// an ordered assignment set to aggregate against.
func SynthesizeAssignments(userID uint, completions []ParsedCompletion) []Assignment {
	ordered := make([]ParsedCompletion, len(completions))
	copy(ordered, completions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return orderOrZero(ordered[i].DisplayOrder) < orderOrZero(ordered[j].DisplayOrder)
	})

	seen := make(map[uint]struct{}, len(ordered))
	out := make([]Assignment, 0, len(ordered))
	for _, c := range ordered {
		if _, dup := seen[c.QuestionnaireID]; dup {
			continue
		}
		seen[c.QuestionnaireID] = struct{}{}

		order := c.DisplayOrder
		if order == nil {
			idx := len(out)
			order = &idx
		}
		category := c.Category
		maxScore := c.MaxScore
		out = append(out, Assignment{
			UserID:             userID,
			QuestionnaireID:    c.QuestionnaireID,
			QuestionnaireTitle: c.QuestionnaireTitle,
			DisplayOrder:       order,
			Category:           &category,
			MaxScore:           &maxScore,
		})
	}
	return out
}

func orderOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
