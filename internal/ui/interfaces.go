package ui

import "time"

type Controller interface {
	OnSelectCourse(courseID string)
	OnCompleteLesson(courseID string)
	OnClaimBoost()
	OnToggleRoadmapStep(stepID string)
	OnAnswerQuiz(questionID string, choiceIndex int)
	OnSaveDraft(questionID, code string)
	OnStartAssessment()
	OnAssessmentAnswer(questionID string, choiceIndex int)
	OnSubmitAssessment(auto bool)
	OnAbandonAssessment()
	OnToggleLike(postID string)
	OnAddComment(postID, body string)
	OnResetProgress()
	OnCycleTheme()
	OnQuit()
}

type View interface {
	Run() error
	Stop()
	SetController(Controller)
	SetScreen(screen Screen)
	SetTheme(variant string)
	SetDashboard(DashboardState)
	SetCourses(CoursesState)
	SetRoadmap(RoadmapState)
	SetQuiz(QuizState)
	SetCoding(CodingState)
	SetAssessment(AssessmentState)
	SetCommunity(CommunityState)
	SetLeaderboard(LeaderboardState)
	FlashStatus(msg string)
	FlashXP(delta int)
}

type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenCourses
	ScreenRoadmap
	ScreenQuiz
	ScreenCoding
	ScreenAssessment
	ScreenCommunity
	ScreenLeaderboard
)

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutCompact
	LayoutTooSmall
)

type DashboardState struct {
	UserName      string
	RankName      string
	RankTop       bool
	PercentToNext int
	XP            int
	StreakCount   int
	StreakDate    string
	Quote         string
	CourseID      string
	CourseTitle   string
	Progress      int
	LastScore     *int
	LastTakenAt   string
}

type CoursesState struct {
	Rows []CourseRow
}

type CourseRow struct {
	CourseID      string
	Title         string
	DescriptionMD string
	Progress      int
	Selected      bool
	Lessons       int
}

type RoadmapState struct {
	Rows []RoadmapRow
}

type RoadmapRow struct {
	StepID        string
	Title         string
	DescriptionMD string
	Done          bool
}

type QuizState struct {
	Questions []QuizQuestion
}

type QuizQuestion struct {
	QuestionID string
	Prompt     string
	Options    []string
	Answered   bool
	Chosen     int
	Correct    bool
}

type CodingState struct {
	Rows []CodingRow
}

type CodingRow struct {
	QuestionID string
	Title      string
	PromptMD   string
	Draft      string
	Starter    string
}

type AssessmentState struct {
	Status     string
	TimeLimit  time.Duration
	DeadlineAt time.Time
	Questions  []QuizQuestion
	Result     AssessmentResultState
}

type AssessmentResultState struct {
	Visible      bool
	ScorePercent int
	BonusXP      int
	Correct      int
	Total        int
	Auto         bool
}

type CommunityState struct {
	Posts []PostRow
}

type PostRow struct {
	PostID   string
	Author   string
	Body     string
	Likes    int
	Comments []string
}

type LeaderboardState struct {
	Rows []LeaderboardRow
}

type LeaderboardRow struct {
	Name string
	XP   int
	You  bool
}
