package report

// categoryRollup accumulates one bucket while completions are folded in.
type categoryRollup struct {
	key              string
	label            string
	sum              float64
	completedCount   int
	totalAssignments int
	contributions    []ContributionPoint
}

// AggregateCategories rolls per-assessment scores up into the taxonomy and
// derives both chart projections. Every known taxonomy entry plus the
// catch-all bucket is always materialized; soft buckets discovered in the
// data are inserted between them in encounter order. A completion counts
// toward the category of its assignment so that completedCount can never
// exceed totalAssignments.
func AggregateCategories(tax Taxonomy, assignments []Assignment, completions []ParsedCompletion) ([]CategorySummary, []RadarPoint, []PowerWheelSegment) {
	rollups := make(map[string]*categoryRollup)
	var order []string

	bucket := func(label string) *categoryRollup {
		if r, ok := rollups[label]; ok {
			return r
		}
		r := &categoryRollup{key: tax.KeyFor(label), label: label}
		rollups[label] = r
		order = append(order, label)
		return r
	}

	// fixed taxonomy entries first, catch-all last
	for _, c := range tax.Categories {
		bucket(c.Label)
	}

	assignmentCategory := make(map[uint]string, len(assignments))
	for _, a := range assignments {
		label := tax.Resolve(a.Category)
		assignmentCategory[a.QuestionnaireID] = label
		bucket(label).totalAssignments++
	}

	for _, c := range completions {
		label, planned := assignmentCategory[c.QuestionnaireID]
		if !planned {
			// completions outside the plan stay out of the roll-up
			continue
		}
		r := bucket(label)
		r.sum += c.NormalizedScore
		r.completedCount++
		r.contributions = append(r.contributions, ContributionPoint{
			AssessmentID: c.AssessmentID,
			Label:        c.QuestionnaireTitle,
			Score:        c.NormalizedScore,
		})
	}

	other := bucket(tax.otherLabel())

	summaries := make([]CategorySummary, 0, len(order))
	radar := make([]RadarPoint, 0, len(order))
	wheel := make([]PowerWheelSegment, 0, len(order))

	emit := func(r *categoryRollup) {
		avg := 0.0
		if r.completedCount > 0 {
			avg = clamp(r.sum/float64(r.completedCount), 0, 100)
		}
		summaries = append(summaries, CategorySummary{
			Key:              r.key,
			Label:            r.label,
			NormalizedScore:  avg,
			CompletedCount:   r.completedCount,
			TotalAssignments: r.totalAssignments,
			Contributions:    r.contributions,
		})
		radar = append(radar, RadarPoint{Subject: r.label, UserScore: avg, TargetScore: 100})
		wheel = append(wheel, PowerWheelSegment{
			Label:            r.label,
			Value:            avg,
			Status:           segmentStatus(r.completedCount, r.totalAssignments),
			CompletedCount:   r.completedCount,
			TotalAssignments: r.totalAssignments,
		})
	}

	for _, label := range order {
		if rollups[label] == other {
			continue
		}
		emit(rollups[label])
	}
	emit(other)

	return summaries, radar, wheel
}

func segmentStatus(completed, total int) SegmentStatus {
	switch {
	case total == 0:
		// nothing planned, nothing pending
		return SegmentCompleted
	case completed == 0:
		return SegmentPending
	case completed < total:
		return SegmentPartial
	default:
		return SegmentCompleted
	}
}
