package app

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"skilltrack/internal/assessment"
	"skilltrack/internal/catalog"
	"skilltrack/internal/learner"
	"skilltrack/internal/store"
	"skilltrack/internal/telemetry"
	"skilltrack/internal/ui"
)

var testNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

type fakeView struct {
	mu          sync.Mutex
	ctrl        ui.Controller
	dashboard   ui.DashboardState
	courses     ui.CoursesState
	roadmap     ui.RoadmapState
	quiz        ui.QuizState
	coding      ui.CodingState
	assess      ui.AssessmentState
	community   ui.CommunityState
	leaderboard ui.LeaderboardState
	theme       string
	flashes     []string
	xpFlashes   []int
}

func (f *fakeView) Run() error                  { return nil }
func (f *fakeView) Stop()                       {}
func (f *fakeView) SetController(c ui.Controller) { f.ctrl = c }
func (f *fakeView) SetScreen(ui.Screen)         {}
func (f *fakeView) SetTheme(variant string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.theme = variant
}
func (f *fakeView) SetDashboard(s ui.DashboardState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dashboard = s
}
func (f *fakeView) SetCourses(s ui.CoursesState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.courses = s
}
func (f *fakeView) SetRoadmap(s ui.RoadmapState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roadmap = s
}
func (f *fakeView) SetQuiz(s ui.QuizState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quiz = s
}
func (f *fakeView) SetCoding(s ui.CodingState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.coding = s
}
func (f *fakeView) SetAssessment(s ui.AssessmentState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assess = s
}
func (f *fakeView) SetCommunity(s ui.CommunityState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.community = s
}
func (f *fakeView) SetLeaderboard(s ui.LeaderboardState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leaderboard = s
}
func (f *fakeView) FlashStatus(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flashes = append(f.flashes, msg)
}
func (f *fakeView) FlashXP(delta int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.xpFlashes = append(f.xpFlashes, delta)
}

func newTestApp(t *testing.T) (*App, *fakeView) {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "skilltrack.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := st.EnsureSchema(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close() })

	logger, err := telemetry.NewJSONLogger("", "test-session")
	if err != nil {
		t.Fatal(err)
	}
	view := &fakeView{}
	a := &App{
		cfg:         Config{UserName: "tess", UI: UIConfig{StyleVariant: "modern_arcade"}},
		logger:      logger,
		store:       st,
		cat:         catalog.Builtin(),
		view:        view,
		session:     assessment.NewSession(),
		sessionID:   "test-session",
		now:         func() time.Time { return testNow },
		theme:       "modern_arcade",
		quizAnswers: map[string]quizAnswer{},
		user:        UserDoc{Name: "tess"},
	}
	return a, view
}

func storedState(t *testing.T, a *App) learner.State {
	t.Helper()
	raw, ok, err := a.store.ReadDoc(context.Background(), store.KeyState)
	if err != nil || !ok {
		t.Fatalf("read state doc: ok=%v err=%v", ok, err)
	}
	return learner.Decode(raw, testNow)
}

func TestBootstrapFreshStateStartsStreakToday(t *testing.T) {
	a, _ := newTestApp(t)
	if err := a.bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	if a.state.Streak.Count != 1 {
		t.Fatalf("streak = %d, want 1", a.state.Streak.Count)
	}
	if a.state.Streak.LastDate != testNow.Format(learner.DateLayout) {
		t.Fatalf("lastDate = %q", a.state.Streak.LastDate)
	}
	// Second bootstrap on the same day must be a no-op for the streak.
	if err := a.bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	if a.state.Streak.Count != 1 {
		t.Fatalf("streak after rerun = %d, want 1", a.state.Streak.Count)
	}
}

func TestBootstrapIncrementsStreakFromYesterday(t *testing.T) {
	a, _ := newTestApp(t)
	doc := []byte(`{"streak":{"count":3,"lastDate":"2026-03-13"},"xp":100}`)
	if err := a.store.WriteDoc(context.Background(), store.KeyState, doc); err != nil {
		t.Fatal(err)
	}
	if err := a.bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	if a.state.Streak.Count != 4 {
		t.Fatalf("streak = %d, want 4", a.state.Streak.Count)
	}
	if a.state.XP != 100 {
		t.Fatalf("xp = %d, want 100", a.state.XP)
	}
}

func TestBootstrapCreatesUserAndProfileDocs(t *testing.T) {
	a, _ := newTestApp(t)
	if err := a.bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	if a.user.Name != "tess" {
		t.Fatalf("user name = %q", a.user.Name)
	}
	if _, ok, _ := a.store.ReadDoc(context.Background(), store.KeyProfile); !ok {
		t.Fatalf("profile doc missing after bootstrap")
	}
}

func TestCompleteLessonPersistsProgressAndXP(t *testing.T) {
	a, view := newTestApp(t)
	a.OnCompleteLesson("go-basics")

	s := storedState(t, a)
	if s.CourseProgress["go-basics"] != 10 {
		t.Fatalf("progress = %d, want 10", s.CourseProgress["go-basics"])
	}
	if s.XP != 15 {
		t.Fatalf("xp = %d, want 15", s.XP)
	}
	if s.SelectedCourseID != "go-basics" {
		t.Fatalf("selected course = %q", s.SelectedCourseID)
	}
	if len(view.xpFlashes) != 1 || view.xpFlashes[0] != 15 {
		t.Fatalf("xp flashes = %v", view.xpFlashes)
	}
}

func TestCompleteLessonUnknownCourseIgnored(t *testing.T) {
	a, _ := newTestApp(t)
	a.OnCompleteLesson("no-such-course")
	if _, ok, _ := a.store.ReadDoc(context.Background(), store.KeyState); ok {
		t.Fatalf("unknown course must not write state")
	}
}

func TestAnswerQuizCorrectOnlyOnce(t *testing.T) {
	a, _ := newTestApp(t)
	// Builtin mcq-zero-value has answer index 1.
	a.OnAnswerQuiz("mcq-zero-value", 1)
	a.OnAnswerQuiz("mcq-zero-value", 1)

	s := storedState(t, a)
	if s.XP != learner.MCQCorrectXP {
		t.Fatalf("xp = %d, want %d", s.XP, learner.MCQCorrectXP)
	}
}

func TestAnswerQuizWrongAwardsNothing(t *testing.T) {
	a, _ := newTestApp(t)
	a.OnAnswerQuiz("mcq-zero-value", 0)

	s := storedState(t, a)
	if s.XP != 0 {
		t.Fatalf("xp = %d, want 0", s.XP)
	}
	if ans, ok := a.quizAnswers["mcq-zero-value"]; !ok || ans.Correct {
		t.Fatalf("expected recorded wrong answer, got %+v ok=%v", ans, ok)
	}
}

func TestClaimBoostAddsFixedXP(t *testing.T) {
	a, _ := newTestApp(t)
	a.OnClaimBoost()
	a.OnClaimBoost()

	s := storedState(t, a)
	if s.XP != 2*learner.BoostXP {
		t.Fatalf("xp = %d, want %d", s.XP, 2*learner.BoostXP)
	}
}

func TestToggleRoadmapStepTwiceAwardsOnce(t *testing.T) {
	a, _ := newTestApp(t)
	a.OnToggleRoadmapStep("setup")
	a.OnToggleRoadmapStep("setup")

	s := storedState(t, a)
	if s.XP != learner.RoadmapStepXP {
		t.Fatalf("xp = %d, want %d", s.XP, learner.RoadmapStepXP)
	}
	if s.CourseRoadmapDone["general"]["setup"] {
		t.Fatalf("double toggle must end off")
	}
}

func TestSubmitAssessmentTwiceAwardsOnce(t *testing.T) {
	a, _ := newTestApp(t)
	a.OnStartAssessment()
	// All builtin assessment answers: 1, 2, 1, 2.
	a.OnAssessmentAnswer("as-goroutine", 1)
	a.OnAssessmentAnswer("as-channel-nil", 2)

	a.OnSubmitAssessment(false)
	first := storedState(t, a)

	// The expiring countdown tick lands after the manual submit.
	a.OnSubmitAssessment(true)
	second := storedState(t, a)

	if first.XP != second.XP {
		t.Fatalf("xp changed on repeat submit: %d -> %d", first.XP, second.XP)
	}
	if first.Assessment.LastScore == nil || *first.Assessment.LastScore != 50 {
		t.Fatalf("lastScore = %v, want 50", first.Assessment.LastScore)
	}
	if first.XP != learner.AssessmentBonusXP(50) {
		t.Fatalf("xp = %d, want %d", first.XP, learner.AssessmentBonusXP(50))
	}
}

func TestAbandonAssessmentScoresNothing(t *testing.T) {
	a, _ := newTestApp(t)
	a.OnStartAssessment()
	a.OnAssessmentAnswer("as-goroutine", 1)
	a.OnAbandonAssessment()

	if _, ok, _ := a.store.ReadDoc(context.Background(), store.KeyState); ok {
		t.Fatalf("abandon must not write state")
	}
	if a.session.Status() != assessment.StatusIdle {
		t.Fatalf("session status = %v, want idle", a.session.Status())
	}
}

func TestAddCommentWhitespaceNotPersisted(t *testing.T) {
	a, view := newTestApp(t)
	a.OnAddComment("post-errors", "   \n\t ")

	s := storedState(t, a)
	if len(s.Community.Comments["post-errors"]) != 0 {
		t.Fatalf("whitespace comment persisted: %v", s.Community.Comments)
	}
	for _, f := range view.flashes {
		if f == "Comment posted" {
			t.Fatalf("whitespace comment must not flash success")
		}
	}
}

func TestToggleLikeOnlyIncrements(t *testing.T) {
	a, _ := newTestApp(t)
	a.OnToggleLike("post-errors")
	a.OnToggleLike("post-errors")

	s := storedState(t, a)
	if s.Community.Likes["post-errors"] != 2 {
		t.Fatalf("likes = %d, want 2", s.Community.Likes["post-errors"])
	}
}

func TestResetProgressKeepsUserDoc(t *testing.T) {
	a, _ := newTestApp(t)
	if err := a.bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	a.OnCompleteLesson("go-basics")
	a.OnResetProgress()

	s := storedState(t, a)
	if s.XP != 0 || len(s.CourseProgress) != 0 {
		t.Fatalf("state not reset: xp=%d progress=%v", s.XP, s.CourseProgress)
	}
	if _, ok, _ := a.store.ReadDoc(context.Background(), store.KeyUser); !ok {
		t.Fatalf("reset must not delete the user doc")
	}
}

func TestCycleThemePersistsVariant(t *testing.T) {
	a, view := newTestApp(t)
	a.OnCycleTheme()

	if view.theme != "cozy_clean" {
		t.Fatalf("view theme = %q, want cozy_clean", view.theme)
	}
	if variant, ok := a.readThemeDoc(context.Background()); !ok || variant != "cozy_clean" {
		t.Fatalf("theme doc = %q ok=%v", variant, ok)
	}
}

func TestDailyQuoteDeterministic(t *testing.T) {
	a, _ := newTestApp(t)
	q1 := a.dailyQuote(testNow)
	q2 := a.dailyQuote(testNow.Add(3 * time.Hour))
	if q1 == "" || q1 != q2 {
		t.Fatalf("same-day quotes differ: %q vs %q", q1, q2)
	}
	q3 := a.dailyQuote(testNow.AddDate(0, 0, 1))
	if q3 == q1 {
		t.Fatalf("expected next day to rotate the quote")
	}
}

func TestLeaderboardIncludesLearnerSorted(t *testing.T) {
	a, _ := newTestApp(t)
	a.state = learner.Default(testNow)
	a.state.XP = 1000

	lb := a.leaderboardState(a.state)
	youIdx := -1
	for i, row := range lb.Rows {
		if row.You {
			youIdx = i
		}
		if i > 0 && lb.Rows[i-1].XP < row.XP {
			t.Fatalf("rows not sorted descending at %d", i)
		}
	}
	if youIdx == -1 {
		t.Fatalf("learner row missing")
	}
	if lb.Rows[youIdx].XP != 1000 || lb.Rows[youIdx].Name != "tess" {
		t.Fatalf("unexpected learner row: %+v", lb.Rows[youIdx])
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.UI.StyleVariant != "modern_arcade" || cfg.UI.MotionLevel != "full" {
		t.Fatalf("ui defaults = %+v", cfg.UI)
	}
	if cfg.UserName != "learner" {
		t.Fatalf("user name = %q", cfg.UserName)
	}
	if cfg.DataDir == "" {
		t.Fatalf("data dir not defaulted")
	}
}

func TestValidateRejectsUnknownEnums(t *testing.T) {
	cfg := Config{UI: UIConfig{StyleVariant: "vaporwave"}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected style variant error")
	}
	cfg = Config{UI: UIConfig{MotionLevel: "extreme"}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected motion level error")
	}
}

func TestFromEnvReadsOverrides(t *testing.T) {
	t.Setenv("SKILLTRACK_USER", "envname")
	t.Setenv("SKILLTRACK_THEME", "retro_terminal")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UserName != "envname" || cfg.UI.StyleVariant != "retro_terminal" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLogoutClearsEveryDoc(t *testing.T) {
	a, _ := newTestApp(t)
	if err := a.bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := a.Logout(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{store.KeyUser, store.KeyProfile, store.KeyState, store.KeyTheme} {
		if _, ok, _ := a.store.ReadDoc(context.Background(), key); ok {
			t.Fatalf("doc %q survived logout", key)
		}
	}
}
