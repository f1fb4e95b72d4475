package assessment

import (
	"testing"
	"time"

	"skilltrack/internal/catalog"
)

var sessionStart = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func testQuestions() []catalog.MCQ {
	return []catalog.MCQ{
		{QuestionID: "q1", Prompt: "one", Options: []string{"a", "b"}, AnswerIndex: 0},
		{QuestionID: "q2", Prompt: "two", Options: []string{"a", "b"}, AnswerIndex: 1},
		{QuestionID: "q3", Prompt: "three", Options: []string{"a", "b", "c"}, AnswerIndex: 2},
	}
}

func TestStartOnlyFromIdle(t *testing.T) {
	s := NewSession()
	if !s.Start(testQuestions(), 5*time.Minute, sessionStart) {
		t.Fatalf("start from idle must succeed")
	}
	if s.Start(testQuestions(), 5*time.Minute, sessionStart) {
		t.Fatalf("start while running must be a no-op")
	}
	if s.Status() != StatusRunning {
		t.Fatalf("status = %v, want running", s.Status())
	}
}

func TestRecordAnswerLastWins(t *testing.T) {
	s := NewSession()
	s.Start(testQuestions(), 5*time.Minute, sessionStart)
	if !s.RecordAnswer("q1", 1) {
		t.Fatalf("record while running must succeed")
	}
	if !s.RecordAnswer("q1", 0) {
		t.Fatalf("re-record must succeed")
	}
	got, ok := s.Answer("q1")
	if !ok || got != 0 {
		t.Fatalf("answer = %d,%v, want 0,true", got, ok)
	}
}

func TestRecordAnswerIgnoredWhenNotRunning(t *testing.T) {
	s := NewSession()
	if s.RecordAnswer("q1", 0) {
		t.Fatalf("record while idle must be ignored")
	}
	s.Start(testQuestions(), 5*time.Minute, sessionStart)
	s.Submit(sessionStart, false)
	if s.RecordAnswer("q1", 0) {
		t.Fatalf("record after submit must be ignored")
	}
}

func TestRemainingAndExpired(t *testing.T) {
	s := NewSession()
	s.Start(testQuestions(), 5*time.Minute, sessionStart)
	if got := s.Remaining(sessionStart.Add(2 * time.Minute)); got != 3*time.Minute {
		t.Fatalf("remaining = %v, want 3m", got)
	}
	if s.Expired(sessionStart.Add(4 * time.Minute)) {
		t.Fatalf("expired before the deadline")
	}
	if !s.Expired(sessionStart.Add(5 * time.Minute)) {
		t.Fatalf("not expired at the deadline")
	}
	if got := s.Remaining(sessionStart.Add(6 * time.Minute)); got != 0 {
		t.Fatalf("remaining past deadline = %v, want 0", got)
	}
}

func TestSubmitScoresAnsweredQuestions(t *testing.T) {
	s := NewSession()
	s.Start(testQuestions(), 5*time.Minute, sessionStart)
	s.RecordAnswer("q1", 0)
	s.RecordAnswer("q2", 0)
	// q3 left unanswered.

	res, ok := s.Submit(sessionStart.Add(time.Minute), false)
	if !ok {
		t.Fatalf("first submit must transition")
	}
	if res.Correct != 1 || res.Total != 3 {
		t.Fatalf("correct/total = %d/%d, want 1/3", res.Correct, res.Total)
	}
	if res.ScorePercent != 33 {
		t.Fatalf("score = %d, want 33", res.ScorePercent)
	}
	if res.BonusXP != 26 {
		t.Fatalf("bonus = %d, want 26", res.BonusXP)
	}
	if len(res.Breakdown) != 3 {
		t.Fatalf("breakdown length = %d", len(res.Breakdown))
	}
	if res.Breakdown[2].Answered {
		t.Fatalf("q3 must be marked unanswered")
	}
}

func TestSubmitIsIdempotent(t *testing.T) {
	s := NewSession()
	s.Start(testQuestions(), 5*time.Minute, sessionStart)
	s.RecordAnswer("q1", 0)

	first, ok := s.Submit(sessionStart, false)
	if !ok {
		t.Fatalf("first submit must transition")
	}
	// The auto-submit tick landing right after a manual submit.
	second, ok := s.Submit(sessionStart.Add(time.Second), true)
	if ok {
		t.Fatalf("second submit must not transition")
	}
	if second.ScorePercent != first.ScorePercent || second.BonusXP != first.BonusXP || second.Auto != first.Auto {
		t.Fatalf("second submit returned a different result: %+v vs %+v", second, first)
	}
}

func TestSubmitEmptyQuestionSet(t *testing.T) {
	s := NewSession()
	s.Start(nil, time.Minute, sessionStart)
	res, ok := s.Submit(sessionStart, true)
	if !ok {
		t.Fatalf("submit must transition")
	}
	if res.ScorePercent != 0 || res.BonusXP != 0 {
		t.Fatalf("empty set scored %d/%d, want 0/0", res.ScorePercent, res.BonusXP)
	}
	if !res.Auto {
		t.Fatalf("auto flag lost")
	}
}

func TestSubmitWhileIdleIsNoop(t *testing.T) {
	s := NewSession()
	if _, ok := s.Submit(sessionStart, false); ok {
		t.Fatalf("submit while idle must be a no-op")
	}
}

func TestQuestionsAreSnapshotted(t *testing.T) {
	qs := testQuestions()
	s := NewSession()
	s.Start(qs, time.Minute, sessionStart)
	qs[0].AnswerIndex = 1

	snap := s.Questions()
	if snap[0].AnswerIndex != 0 {
		t.Fatalf("mutating the caller slice leaked into the session")
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	s := NewSession()
	s.Start(testQuestions(), time.Minute, sessionStart)
	s.RecordAnswer("q1", 0)
	s.Submit(sessionStart, false)

	s.Reset()
	if s.Status() != StatusIdle {
		t.Fatalf("status after reset = %v, want idle", s.Status())
	}
	if !s.Start(testQuestions(), time.Minute, sessionStart) {
		t.Fatalf("start after reset must succeed")
	}
	if _, ok := s.Answer("q1"); ok {
		t.Fatalf("answers must not survive a reset")
	}
}
