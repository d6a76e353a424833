package domain

// ReadingSession is a calendar-day aggregate of reading activity. At most one
// record exists per date; minutes and pages accumulate additively across
// multiple app opens on the same day.
type ReadingSession struct {
	Date        string `json:"date"` // device-local calendar day, YYYY-MM-DD
	MinutesRead int    `json:"minutes_read"`
	PagesRead   int    `json:"pages_read"`
}

// ReadingStats is the derived aggregate over the retained session list. It is
// recomputed wholesale on every statistics flush and never hand-edited.
type ReadingStats struct {
	TotalMinutesRead       int              `json:"total_minutes_read"`
	TotalPagesRead         int              `json:"total_pages_read"`
	SessionsCount          int              `json:"sessions_count"`
	AveragePagesPerSession int              `json:"average_pages_per_session"`
	CurrentStreak          int              `json:"current_streak"`
	LongestStreak          int              `json:"longest_streak"`
	Sessions               []ReadingSession `json:"sessions"`
}

// DefaultStats returns zeroed statistics for a fresh document.
func DefaultStats() ReadingStats {
	return ReadingStats{Sessions: []ReadingSession{}}
}
