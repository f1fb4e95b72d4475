package catalog

import (
	"fmt"
	"regexp"
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,63}$`)

// Catalog is the read-only content contract: courses, practice questions,
// the timed assessment, roadmap steps, community seed posts, a static
// leaderboard, and motivational quotes. The progression engine never writes
// to it.
type Catalog struct {
	Courses     []Course           `yaml:"courses"`
	MCQs        []MCQ              `yaml:"mcqs"`
	Coding      []CodingQuestion   `yaml:"coding"`
	Assessment  Assessment         `yaml:"assessment"`
	Roadmap     []RoadmapStep      `yaml:"roadmap"`
	Community   []Post             `yaml:"community"`
	Leaderboard []LeaderboardEntry `yaml:"leaderboard"`
	Quotes      []string           `yaml:"quotes"`
}

type Course struct {
	CourseID      string   `yaml:"course_id"`
	Title         string   `yaml:"title"`
	DescriptionMD string   `yaml:"description_md"`
	Lessons       []string `yaml:"lessons"`
}

type MCQ struct {
	QuestionID  string   `yaml:"question_id"`
	Prompt      string   `yaml:"prompt"`
	Options     []string `yaml:"options"`
	AnswerIndex int      `yaml:"answer_index"`
}

type CodingQuestion struct {
	QuestionID string `yaml:"question_id"`
	Title      string `yaml:"title"`
	PromptMD   string `yaml:"prompt_md"`
	Starter    string `yaml:"starter"`
}

type Assessment struct {
	TimeSeconds int   `yaml:"time_seconds"`
	Questions   []MCQ `yaml:"questions"`
}

type RoadmapStep struct {
	StepID        string `yaml:"step_id"`
	Title         string `yaml:"title"`
	DescriptionMD string `yaml:"description_md"`
}

type Post struct {
	PostID string `yaml:"post_id"`
	Author string `yaml:"author"`
	Body   string `yaml:"body"`
}

type LeaderboardEntry struct {
	Name string `yaml:"name"`
	XP   int    `yaml:"xp"`
}

func (c Catalog) Validate() error {
	seenCourses := map[string]struct{}{}
	for _, course := range c.Courses {
		if !idPattern.MatchString(course.CourseID) {
			return fmt.Errorf("invalid course_id %q", course.CourseID)
		}
		if _, ok := seenCourses[course.CourseID]; ok {
			return fmt.Errorf("duplicate course_id %q", course.CourseID)
		}
		seenCourses[course.CourseID] = struct{}{}
		if course.Title == "" {
			return fmt.Errorf("course %s: title is required", course.CourseID)
		}
	}
	for _, q := range c.MCQs {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("mcqs: %w", err)
		}
	}
	for _, q := range c.Coding {
		if !idPattern.MatchString(q.QuestionID) {
			return fmt.Errorf("coding: invalid question_id %q", q.QuestionID)
		}
	}
	if c.Assessment.TimeSeconds < 0 {
		return fmt.Errorf("assessment.time_seconds must be >= 0")
	}
	for _, q := range c.Assessment.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("assessment: %w", err)
		}
	}
	seenSteps := map[string]struct{}{}
	for _, step := range c.Roadmap {
		if !idPattern.MatchString(step.StepID) {
			return fmt.Errorf("roadmap: invalid step_id %q", step.StepID)
		}
		if _, ok := seenSteps[step.StepID]; ok {
			return fmt.Errorf("duplicate step_id %q", step.StepID)
		}
		seenSteps[step.StepID] = struct{}{}
	}
	for _, p := range c.Community {
		if !idPattern.MatchString(p.PostID) {
			return fmt.Errorf("community: invalid post_id %q", p.PostID)
		}
	}
	return nil
}

func (q MCQ) Validate() error {
	if !idPattern.MatchString(q.QuestionID) {
		return fmt.Errorf("invalid question_id %q", q.QuestionID)
	}
	if q.Prompt == "" {
		return fmt.Errorf("question %s: prompt is required", q.QuestionID)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question %s: at least 2 options required", q.QuestionID)
	}
	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
		return fmt.Errorf("question %s: answer_index out of range", q.QuestionID)
	}
	return nil
}

// CourseByID returns the course and whether it exists; a stale selected
// course id simply misses.
func (c Catalog) CourseByID(id string) (Course, bool) {
	for _, course := range c.Courses {
		if course.CourseID == id {
			return course, true
		}
	}
	return Course{}, false
}

func (c Catalog) CodingByID(id string) (CodingQuestion, bool) {
	for _, q := range c.Coding {
		if q.QuestionID == id {
			return q, true
		}
	}
	return CodingQuestion{}, false
}
