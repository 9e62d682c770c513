package rubric

import "strings"

// ScoreForIndex maps a gradingIndex (0..3) to its tier value.
func ScoreForIndex(i int) (int, bool) {
	if i < 0 || i >= len(TierScores) {
		return 0, false
	}
	return TierScores[i], true
}

// lineBlank reports whether both the category name and all four score texts
// are empty or whitespace-only.
func lineBlank(l Line) bool {
	if strings.TrimSpace(l.CategoryName) != "" {
		return false
	}
	for _, ps := range l.PossibleScores {
		if strings.TrimSpace(ps.Text) != "" {
			return false
		}
	}
	return true
}

// gradableCount scans backward from the end and excludes the maximal trailing
// run of fully-blank lines (the in-progress draft rows). Everything at or
// before the first non-blank line counts, blank or not.
func gradableCount(lines []Line) int {
	n := len(lines)
	for n > 0 && lineBlank(lines[n-1]) {
		n--
	}
	return n
}

// GradableLineIDs returns the ids of the lines that count toward MaxGrade and
// are selectable during grading.
func (r *Rubric) GradableLineIDs() []string {
	n := gradableCount(r.Lines)
	ids := make([]string, 0, n)
	for _, l := range r.Lines[:n] {
		ids = append(ids, l.LineID)
	}
	return ids
}

// MaxGrade is 25 per gradable line.
func (r *Rubric) MaxGrade() int {
	return TierScores[0] * gradableCount(r.Lines)
}

// computeGrade sums tier values over the entries whose line is currently
// gradable. Entries pointing at non-gradable lines stay recorded but do not
// count.
func computeGrade(lines []Line, locs []GradeLocation) int {
	n := gradableCount(lines)
	total := 0
	for _, loc := range locs {
		if loc.CategoryIndex < 0 || loc.CategoryIndex >= n {
			continue
		}
		if v, ok := ScoreForIndex(loc.GradingIndex); ok {
			total += v
		}
	}
	return total
}

// recomputeGrades refreshes every cached CurrentGrade from its grade
// locations. Must run after every mutation that can affect the sums
// (tier selection, line removal, line content edits that change blankness).
func (r *Rubric) recomputeGrades() {
	for i := range r.StudentGrades {
		r.StudentGrades[i].CurrentGrade = computeGrade(r.Lines, r.StudentGrades[i].GradeLocations)
	}
}
