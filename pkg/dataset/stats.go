package dataset

// CategoryStats summarizes the records of one character.
type CategoryStats struct {
	Category string
	Words    int
	Total    float64

	// TopWord is the highest-count word; ties keep the earlier record.
	TopWord  string
	TopCount float64
}

// Summarize returns per-character statistics in first-appearance order.
func Summarize(recs []Record) []CategoryStats {
	index := make(map[string]int)
	var out []CategoryStats
	for _, r := range recs {
		i, ok := index[r.Character]
		if !ok {
			i = len(out)
			index[r.Character] = i
			out = append(out, CategoryStats{Category: r.Character, TopWord: r.Word, TopCount: r.Count})
		}
		s := &out[i]
		s.Words++
		s.Total += r.Count
		if r.Count > s.TopCount {
			s.TopWord, s.TopCount = r.Word, r.Count
		}
	}
	return out
}
