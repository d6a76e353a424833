// Package stats derives reading statistics from per-day session records:
// totals, averages and day streaks, with bounded retention.
package stats

import (
	"slices"
	"time"

	"github.com/codexreader/codex-core/internal/domain"
)

// DateLayout is the calendar-day key format. Lexicographic order on keys
// matches chronological order, so retention pruning is a string compare.
const DateLayout = "2006-01-02"

// DefaultRetentionDays bounds how far back session records are kept.
const DefaultRetentionDays = 90

// DateKey returns the calendar-day key for t in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Merge folds a day's delta into the session list. At most one record exists
// per date; an existing record accumulates additively, otherwise a new one
// is appended. The input slice is not modified.
func Merge(sessions []domain.ReadingSession, date string, minutes, pages int) []domain.ReadingSession {
	out := slices.Clone(sessions)
	for i := range out {
		if out[i].Date == date {
			out[i].MinutesRead += minutes
			out[i].PagesRead += pages
			return out
		}
	}
	return append(out, domain.ReadingSession{Date: date, MinutesRead: minutes, PagesRead: pages})
}

// Prune drops sessions older than retentionDays before now. Comparison is on
// the date key strings.
func Prune(sessions []domain.ReadingSession, now time.Time, retentionDays int) []domain.ReadingSession {
	cutoff := DateKey(now.AddDate(0, 0, -retentionDays))
	out := make([]domain.ReadingSession, 0, len(sessions))
	for _, s := range sessions {
		if s.Date >= cutoff {
			out = append(out, s)
		}
	}
	return out
}

// Aggregate recomputes the derived statistics over a session list. The
// aggregate is always rebuilt wholesale; sessions is stored as given.
func Aggregate(sessions []domain.ReadingSession, now time.Time) domain.ReadingStats {
	stats := domain.ReadingStats{Sessions: sessions}
	if stats.Sessions == nil {
		stats.Sessions = []domain.ReadingSession{}
	}

	for _, s := range sessions {
		stats.TotalMinutesRead += s.MinutesRead
		stats.TotalPagesRead += s.PagesRead
	}
	stats.SessionsCount = len(sessions)
	if stats.SessionsCount > 0 {
		// Rounded to the nearest whole page, halves up.
		stats.AveragePagesPerSession = (stats.TotalPagesRead + stats.SessionsCount/2) / stats.SessionsCount
	}

	stats.CurrentStreak, stats.LongestStreak = Streaks(sessions, now)
	return stats
}

// Streaks computes the current and longest runs of consecutive reading days.
//
// The current streak is anchored at today: it counts back from the most
// recent session only when that session is today or yesterday, otherwise it
// is 0. The longest streak is the maximum consecutive run anywhere in the
// retained history.
func Streaks(sessions []domain.ReadingSession, now time.Time) (current, longest int) {
	if len(sessions) == 0 {
		return 0, 0
	}

	seen := make(map[string]struct{}, len(sessions))
	days := make([]time.Time, 0, len(sessions))
	for _, s := range sessions {
		if _, dup := seen[s.Date]; dup {
			continue
		}
		d, err := time.ParseInLocation(DateLayout, s.Date, now.Location())
		if err != nil {
			continue
		}
		seen[s.Date] = struct{}{}
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0, 0
	}

	// Most recent first.
	slices.SortFunc(days, func(a, b time.Time) int {
		return b.Compare(a)
	})

	today := DateKey(now)
	yesterday := DateKey(now.AddDate(0, 0, -1))

	if first := DateKey(days[0]); first == today || first == yesterday {
		current = 1
		for i := 1; i < len(days); i++ {
			if DateKey(days[i-1].AddDate(0, 0, -1)) != DateKey(days[i]) {
				break
			}
			current++
		}
	}

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if DateKey(days[i-1].AddDate(0, 0, -1)) == DateKey(days[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return current, longest
}
