package dashboard

// GradeFor buckets a 0–100 percentage into the letter grades used on the
// dashboard charts.
func GradeFor(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}

// Distribution counts letter grades over a set of percentages.
func Distribution(percentages []float64) map[string]int {
	dist := map[string]int{"A": 0, "B": 0, "C": 0, "D": 0, "F": 0}
	for _, pct := range percentages {
		dist[GradeFor(pct)]++
	}
	return dist
}
