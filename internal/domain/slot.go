package domain

// Interval is a half-open [Start, End) minute range within a single day.
// Minutes are offsets from midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals overlap.
// Touching endpoints (a.End == b.Start) do not count as overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Duration returns the interval length in minutes
func (i Interval) Duration() int {
	return i.End - i.Start
}

// RoundUpToServiceBlock rounds a requested duration up to the next whole
// service block (ServiceBlockMinutes). 45 -> 60, 60 -> 60, 61 -> 120.
func RoundUpToServiceBlock(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}
	blocks := (durationMinutes + ServiceBlockMinutes - 1) / ServiceBlockMinutes
	return blocks * ServiceBlockMinutes
}
