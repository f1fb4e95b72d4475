package learner

import (
	"encoding/json"
	"time"
)

// DateLayout is the calendar-day granularity used for streak bookkeeping.
const DateLayout = "2006-01-02"

type Streak struct {
	Count    int    `json:"count"`
	LastDate string `json:"lastDate,omitempty"`
}

type AssessmentRecord struct {
	LastScore   *int   `json:"lastScore,omitempty"`
	LastTakenAt string `json:"lastTakenAt,omitempty"`
}

type Community struct {
	Likes    map[string]int      `json:"likes"`
	Comments map[string][]string `json:"comments"`
}

// State is the sole persisted learner aggregate. Every engine operation
// takes a State value and returns a fresh one; callers persist the whole
// document, never individual fields.
type State struct {
	Streak            Streak                     `json:"streak"`
	XP                int                        `json:"xp"`
	CourseProgress    map[string]int             `json:"courseProgress"`
	SelectedCourseID  string                     `json:"selectedCourseId,omitempty"`
	CourseRoadmapDone map[string]map[string]bool `json:"courseRoadmapDone"`
	// RoadmapDone predates per-course roadmap completion. It is merged from
	// older documents but no longer written.
	RoadmapDone  map[string]bool   `json:"roadmapDone"`
	Assessment   AssessmentRecord  `json:"assessment"`
	CodingDrafts map[string]string `json:"codingDrafts"`
	Community    Community         `json:"community"`
}

func Default(today time.Time) State {
	return State{
		Streak:            Streak{Count: 1, LastDate: today.Format(DateLayout)},
		XP:                0,
		CourseProgress:    map[string]int{},
		CourseRoadmapDone: map[string]map[string]bool{},
		RoadmapDone:       map[string]bool{},
		CodingDrafts:      map[string]string{},
		Community: Community{
			Likes:    map[string]int{},
			Comments: map[string][]string{},
		},
	}
}

// Decode merges a stored document over the default shape. Unmarshalling into
// a populated default gives the forward-compatible merge: top-level keys
// present in the document override, keys missing from the document keep their
// defaults, and the streak sub-object merges key by key. A malformed document
// falls back to the default state entirely.
func Decode(raw []byte, today time.Time) State {
	s := Default(today)
	if len(raw) == 0 {
		return s
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return Default(today)
	}
	s.Normalize()
	return s
}

// Encode serializes for the persistence store. An error here means the state
// shape itself is broken and is surfaced to the caller.
func Encode(s State) ([]byte, error) {
	return json.Marshal(s)
}

// Clone returns a deep copy. Engine operations clone before mutating so the
// caller's value is never touched.
func (s State) Clone() State {
	out := s
	out.CourseProgress = cloneIntMap(s.CourseProgress)
	out.RoadmapDone = cloneBoolMap(s.RoadmapDone)
	out.CodingDrafts = cloneStringMap(s.CodingDrafts)
	out.CourseRoadmapDone = make(map[string]map[string]bool, len(s.CourseRoadmapDone))
	for course, steps := range s.CourseRoadmapDone {
		out.CourseRoadmapDone[course] = cloneBoolMap(steps)
	}
	out.Community.Likes = cloneIntMap(s.Community.Likes)
	out.Community.Comments = make(map[string][]string, len(s.Community.Comments))
	for post, comments := range s.Community.Comments {
		out.Community.Comments[post] = append([]string(nil), comments...)
	}
	if s.Assessment.LastScore != nil {
		v := *s.Assessment.LastScore
		out.Assessment.LastScore = &v
	}
	return out
}

// Normalize clamps every percentage field to [0,100], floors counters at
// zero, and reallocates nil maps so lookups never panic. It runs on decode
// and before every persist.
func (s *State) Normalize() {
	if s.Streak.Count < 0 {
		s.Streak.Count = 0
	}
	if s.XP < 0 {
		s.XP = 0
	}
	if s.CourseProgress == nil {
		s.CourseProgress = map[string]int{}
	}
	for id, pct := range s.CourseProgress {
		s.CourseProgress[id] = clampPercent(pct)
	}
	if s.CourseRoadmapDone == nil {
		s.CourseRoadmapDone = map[string]map[string]bool{}
	}
	if s.RoadmapDone == nil {
		s.RoadmapDone = map[string]bool{}
	}
	if s.Assessment.LastScore != nil {
		v := clampPercent(*s.Assessment.LastScore)
		s.Assessment.LastScore = &v
	}
	if s.CodingDrafts == nil {
		s.CodingDrafts = map[string]string{}
	}
	if s.Community.Likes == nil {
		s.Community.Likes = map[string]int{}
	}
	for post, n := range s.Community.Likes {
		if n < 0 {
			s.Community.Likes[post] = 0
		}
	}
	if s.Community.Comments == nil {
		s.Community.Comments = map[string][]string{}
	}
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func cloneIntMap(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneBoolMap(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
