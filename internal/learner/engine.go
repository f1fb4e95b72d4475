package learner

import (
	"math"
	"strings"
	"time"
)

// XP awards and increments per domain event.
const (
	LessonProgressStep = 10
	LessonXP           = 15
	RoadmapStepXP      = 30
	MCQCorrectXP       = 20
	AssessmentMaxXP    = 80
	BoostXP            = 25
)

// CompleteLessonStep advances a course by one lesson step and grants the
// lesson award. A course already at 100% keeps its progress but still earns
// XP; that is the shipped behavior and is kept until product says otherwise.
func CompleteLessonStep(s State, courseID string) (State, int) {
	out := s.Clone()
	out.CourseProgress[courseID] = clampPercent(out.CourseProgress[courseID] + LessonProgressStep)
	out.XP += LessonXP
	return out, LessonXP
}

// GrantBonusXP adds an unconditional award. Negative amounts are rejected as
// a no-op; XP only moves down through a full reset.
func GrantBonusXP(s State, amount int) (State, int) {
	if amount <= 0 {
		return s.Clone(), 0
	}
	out := s.Clone()
	out.XP += amount
	return out, amount
}

// ToggleRoadmapStep flips a per-course roadmap step. XP is granted only on
// the off-to-on transition, so toggling back and forth cannot farm awards.
func ToggleRoadmapStep(s State, courseID, stepID string) (State, int) {
	out := s.Clone()
	steps := out.CourseRoadmapDone[courseID]
	if steps == nil {
		steps = map[string]bool{}
		out.CourseRoadmapDone[courseID] = steps
	}
	was := steps[stepID]
	steps[stepID] = !was
	if was {
		return out, 0
	}
	out.XP += RoadmapStepXP
	return out, RoadmapStepXP
}

// AnswerMCQ grants the quiz award on a correct choice. A wrong choice leaves
// the state untouched; feedback is the renderer's concern.
func AnswerMCQ(s State, chosenIndex, answerIndex int) (State, int, bool) {
	if chosenIndex != answerIndex {
		return s.Clone(), 0, false
	}
	out := s.Clone()
	out.XP += MCQCorrectXP
	return out, MCQCorrectXP, true
}

// SaveCodingDraft overwrites the saved text for a question. No validation,
// no award.
func SaveCodingDraft(s State, questionID, text string) State {
	out := s.Clone()
	out.CodingDrafts[questionID] = text
	return out
}

// AssessmentBonusXP converts a score percentage into the assessment award,
// up to AssessmentMaxXP.
func AssessmentBonusXP(scorePercent int) int {
	return int(math.Round(float64(clampPercent(scorePercent)) / 100 * AssessmentMaxXP))
}

// RecordAssessmentResult stores the latest assessment outcome and adds the
// caller-computed bonus.
func RecordAssessmentResult(s State, scorePercent, bonusXP int, takenAt time.Time) (State, int) {
	out := s.Clone()
	score := clampPercent(scorePercent)
	out.Assessment.LastScore = &score
	out.Assessment.LastTakenAt = takenAt.Format(time.RFC3339)
	if bonusXP < 0 {
		bonusXP = 0
	}
	out.XP += bonusXP
	return out, bonusXP
}

// ToggleLike increments a post's like counter. Likes cannot be withdrawn.
func ToggleLike(s State, postID string) State {
	out := s.Clone()
	out.Community.Likes[postID]++
	return out
}

// AddComment appends to a post's comment thread. Whitespace-only text is
// dropped silently.
func AddComment(s State, postID, text string) State {
	if strings.TrimSpace(text) == "" {
		return s.Clone()
	}
	out := s.Clone()
	out.Community.Comments[postID] = append(out.Community.Comments[postID], text)
	return out
}

// SelectCourse records the last viewed course. The id may go stale when the
// catalog changes; readers tolerate that.
func SelectCourse(s State, courseID string) State {
	out := s.Clone()
	out.SelectedCourseID = courseID
	return out
}

// ResetProgress returns the default state. Identity and profile documents
// live under separate keys and are left alone by callers of this.
func ResetProgress(today time.Time) State {
	return Default(today)
}
