package assessment

import (
	"math"
	"time"

	"skilltrack/internal/catalog"
	"skilltrack/internal/learner"
)

type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusSubmitted
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusSubmitted:
		return "submitted"
	default:
		return "idle"
	}
}

// Session is the ephemeral timed-assessment state machine:
// idle -> running -> submitted, with Reset returning to idle from anywhere.
// It is never persisted; navigating away discards it. All methods take the
// current time from the caller, so the countdown cadence lives with the
// renderer and scoring stays deterministic.
type Session struct {
	status    Status
	endsAt    time.Time
	questions []catalog.MCQ
	answers   map[string]int
	result    Result
	auto      bool
}

// Result is handed back to the caller to feed RecordAssessmentResult.
type Result struct {
	ScorePercent int
	BonusXP      int
	Correct      int
	Total        int
	Auto         bool
	Breakdown    []QuestionResult
}

type QuestionResult struct {
	QuestionID  string
	ChosenIndex int
	Answered    bool
	Correct     bool
}

func NewSession() *Session {
	return &Session{answers: map[string]int{}}
}

func (s *Session) Status() Status { return s.status }

// Questions returns the snapshot taken at Start. Catalog changes after the
// session starts do not affect it.
func (s *Session) Questions() []catalog.MCQ {
	return append([]catalog.MCQ(nil), s.questions...)
}

// Start transitions idle -> running. Starting an already running or
// submitted session is a no-op; Reset first.
func (s *Session) Start(questions []catalog.MCQ, limit time.Duration, now time.Time) bool {
	if s.status != StatusIdle {
		return false
	}
	s.questions = append([]catalog.MCQ(nil), questions...)
	s.answers = map[string]int{}
	s.endsAt = now.Add(limit)
	s.status = StatusRunning
	s.result = Result{}
	s.auto = false
	return true
}

// RecordAnswer stores the choice for a question; the last choice wins.
// Ignored unless the session is running.
func (s *Session) RecordAnswer(questionID string, choiceIndex int) bool {
	if s.status != StatusRunning {
		return false
	}
	if choiceIndex < 0 {
		return false
	}
	s.answers[questionID] = choiceIndex
	return true
}

func (s *Session) Answer(questionID string) (int, bool) {
	v, ok := s.answers[questionID]
	return v, ok
}

// Remaining reports the countdown value, floored at zero.
func (s *Session) Remaining(now time.Time) time.Duration {
	if s.status != StatusRunning {
		return 0
	}
	d := s.endsAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Expired reports whether the auto-submit deadline has passed.
func (s *Session) Expired(now time.Time) bool {
	return s.status == StatusRunning && !now.Before(s.endsAt)
}

// Submit transitions running -> submitted exactly once and returns the
// scored result. A second call (the user racing the auto-submit timer)
// returns the identical cached result, so XP cannot be awarded twice.
func (s *Session) Submit(now time.Time, auto bool) (Result, bool) {
	if s.status == StatusSubmitted {
		return s.result, false
	}
	if s.status != StatusRunning {
		return Result{}, false
	}

	correct := 0
	breakdown := make([]QuestionResult, 0, len(s.questions))
	for _, q := range s.questions {
		chosen, answered := s.answers[q.QuestionID]
		qr := QuestionResult{QuestionID: q.QuestionID, ChosenIndex: chosen, Answered: answered}
		if answered && chosen == q.AnswerIndex {
			qr.Correct = true
			correct++
		}
		breakdown = append(breakdown, qr)
	}
	total := len(s.questions)
	// Denominator floored at 1: an empty question set scores 0, not NaN.
	score := int(math.Round(100 * float64(correct) / float64(max(1, total))))

	s.result = Result{
		ScorePercent: score,
		BonusXP:      learner.AssessmentBonusXP(score),
		Correct:      correct,
		Total:        total,
		Auto:         auto,
		Breakdown:    breakdown,
	}
	s.auto = auto
	s.status = StatusSubmitted
	return s.result, true
}

// Auto reports whether the submitted result came from the countdown timer.
func (s *Session) Auto() bool { return s.auto }

// Reset returns to idle from any state and drops the snapshot. The caller's
// tick generation bump makes any in-flight countdown tick a no-op.
func (s *Session) Reset() {
	s.status = StatusIdle
	s.questions = nil
	s.answers = map[string]int{}
	s.result = Result{}
	s.endsAt = time.Time{}
	s.auto = false
}
