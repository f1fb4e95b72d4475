package learner

import "time"

// AdvanceStreak applies the once-per-session-start streak continuation.
// Day arithmetic is midnight-to-midnight in today's location, so the hour a
// session starts (or a DST shift) cannot skew the diff. Calling it again on
// the same day is a no-op.
func AdvanceStreak(s State, today time.Time) State {
	out := s.Clone()
	day := today.Format(DateLayout)

	if out.Streak.LastDate == "" {
		out.Streak = Streak{Count: 1, LastDate: day}
		return out
	}
	if out.Streak.LastDate == day {
		return out
	}

	last, err := time.ParseInLocation(DateLayout, out.Streak.LastDate, today.Location())
	if err != nil {
		out.Streak = Streak{Count: 1, LastDate: day}
		return out
	}
	cur := midnight(today)
	diffDays := int(cur.Sub(midnight(last)).Hours() / 24)

	if diffDays == 1 {
		out.Streak.Count++
	} else {
		out.Streak.Count = 1
	}
	out.Streak.LastDate = day
	return out
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
