package journey

import "math"

// CompletionMap maps lesson id to completed. Lessons missing from the
// map read as not completed.
type CompletionMap map[string]bool

// AggregatePercent returns the rounded percentage of lessons in the
// set that are completed. An empty lesson set is 0, not a division
// error.
func AggregatePercent(lessonIDs []string, completion CompletionMap) int {
	if len(lessonIDs) == 0 {
		return 0
	}
	done := 0
	for _, id := range lessonIDs {
		if completion[id] {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(lessonIDs)) * 100))
}
