package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"skilltrack/internal/assessment"
	"skilltrack/internal/catalog"
	"skilltrack/internal/learner"
	"skilltrack/internal/store"
	"skilltrack/internal/telemetry"
	"skilltrack/internal/ui"

	"github.com/google/uuid"
)

const opTimeout = 5 * time.Second

type quizAnswer struct {
	Chosen  int
	Correct bool
}

// App owns the store, catalog, session, and view, and is the ui.Controller.
// Every mutating operation re-reads the persisted state, applies a pure
// engine function, persists the whole document, and pushes fresh view state.
type App struct {
	cfg Config

	logger  *telemetry.JSONLogger
	store   Store
	cat     catalog.Catalog
	view    ui.View
	session *assessment.Session

	sessionID string
	now       func() time.Time

	mu           sync.Mutex
	state        learner.State
	theme        string
	user         UserDoc
	quizAnswers  map[string]quizAnswer
	assessResult *assessment.Result
}

func New(cfg Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	logger, err := telemetry.NewJSONLogger(cfg.LogPath, sessionID)
	if err != nil {
		return nil, err
	}

	st, err := store.NewSQLite(filepath.Join(cfg.DataDir, "skilltrack.db"))
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	if err := st.EnsureSchema(context.Background()); err != nil {
		_ = st.Close()
		_ = logger.Close()
		return nil, err
	}

	cat, err := catalog.NewLoader().Load(cfg.CatalogPath)
	if err != nil {
		// The loader already fell back to the built-in dataset.
		logger.Error(telemetry.EventCatalogFallback, err, map[string]any{"path": cfg.CatalogPath})
	}

	view := ui.New(ui.Options{
		ASCIIOnly:    cfg.ASCIIOnly,
		Debug:        cfg.Debug,
		StyleVariant: cfg.UI.StyleVariant,
		MotionLevel:  cfg.UI.MotionLevel,
	})

	a := &App{
		cfg:         cfg,
		logger:      logger,
		store:       st,
		cat:         cat,
		view:        view,
		session:     assessment.NewSession(),
		sessionID:   sessionID,
		now:         time.Now,
		theme:       cfg.UI.StyleVariant,
		quizAnswers: map[string]quizAnswer{},
	}
	view.SetController(a)
	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	if err := a.bootstrap(ctx); err != nil {
		return err
	}
	a.mu.Lock()
	a.pushAllLocked()
	a.mu.Unlock()
	a.view.SetScreen(ui.ScreenDashboard)
	return a.view.Run()
}

func (a *App) Close() {
	_ = a.store.Close()
	_ = a.logger.Close()
}

// Logout wipes every stored document. Invoked from the command line, not
// from inside the TUI.
func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		a.logger.Error(telemetry.EventStoreError, err, map[string]any{"op": "clear"})
		return fmt.Errorf("clear store: %w", err)
	}
	a.logger.Event(telemetry.EventStateReset, map[string]any{"logout": true})
	return nil
}

func (a *App) bootstrap(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.ensureUserDocs(ctx)
	if err != nil {
		return err
	}
	a.user = user

	if variant, ok := a.readThemeDoc(ctx); ok {
		a.theme = variant
		a.view.SetTheme(variant)
	} else if err := a.writeThemeDoc(ctx, a.theme); err != nil {
		a.logger.Error(telemetry.EventStoreError, err, map[string]any{"op": "write_theme"})
	}

	today := a.now()
	s := a.reload(ctx, today)
	before := s.Streak.Count
	s = learner.AdvanceStreak(s, today)
	s.Normalize()
	if err := a.persistState(ctx, s); err != nil {
		return err
	}
	a.state = s
	a.logger.Event(telemetry.EventStateLoaded, map[string]any{"xp": s.XP, "streak": s.Streak.Count})
	if s.Streak.Count != before {
		a.logger.Event(telemetry.EventStreakAdvanced, map[string]any{"count": s.Streak.Count})
	}
	return nil
}

func (a *App) ensureUserDocs(ctx context.Context) (UserDoc, error) {
	var user UserDoc
	raw, ok, err := a.store.ReadDoc(ctx, store.KeyUser)
	if err != nil {
		return user, fmt.Errorf("read user doc: %w", err)
	}
	if !ok || json.Unmarshal(raw, &user) != nil || user.Name == "" {
		user = UserDoc{Name: a.cfg.UserName, JoinedAt: a.now().Format(time.RFC3339)}
		b, err := json.Marshal(user)
		if err != nil {
			return user, fmt.Errorf("encode user doc: %w", err)
		}
		if err := a.store.WriteDoc(ctx, store.KeyUser, b); err != nil {
			return user, fmt.Errorf("write user doc: %w", err)
		}
	}

	if _, ok, err := a.store.ReadDoc(ctx, store.KeyProfile); err != nil {
		return user, fmt.Errorf("read profile doc: %w", err)
	} else if !ok {
		b, err := json.Marshal(ProfileDoc{DisplayName: user.Name})
		if err != nil {
			return user, fmt.Errorf("encode profile doc: %w", err)
		}
		if err := a.store.WriteDoc(ctx, store.KeyProfile, b); err != nil {
			return user, fmt.Errorf("write profile doc: %w", err)
		}
	}
	return user, nil
}

func (a *App) readThemeDoc(ctx context.Context) (string, bool) {
	raw, ok, err := a.store.ReadDoc(ctx, store.KeyTheme)
	if err != nil || !ok {
		return "", false
	}
	var doc ThemeDoc
	if json.Unmarshal(raw, &doc) != nil {
		return "", false
	}
	for _, v := range ui.ThemeVariants {
		if doc.Variant == v {
			return doc.Variant, true
		}
	}
	return "", false
}

func (a *App) writeThemeDoc(ctx context.Context, variant string) error {
	b, err := json.Marshal(ThemeDoc{Variant: variant})
	if err != nil {
		return err
	}
	return a.store.WriteDoc(ctx, store.KeyTheme, b)
}

// reload reads the persisted state document; missing or corrupt documents
// decode to defaults.
func (a *App) reload(ctx context.Context, today time.Time) learner.State {
	raw, _, err := a.store.ReadDoc(ctx, store.KeyState)
	if err != nil {
		a.logger.Error(telemetry.EventStoreError, err, map[string]any{"op": "read_state"})
	}
	return learner.Decode(raw, today)
}

func (a *App) persistState(ctx context.Context, s learner.State) error {
	b, err := learner.Encode(s)
	if err != nil {
		a.logger.Error(telemetry.EventStoreError, err, map[string]any{"op": "encode_state"})
		return fmt.Errorf("encode state: %w", err)
	}
	if err := a.store.WriteDoc(ctx, store.KeyState, b); err != nil {
		a.logger.Error(telemetry.EventStoreError, err, map[string]any{"op": "write_state"})
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// mutateLocked runs one read-modify-write cycle. Callers hold a.mu.
func (a *App) mutateLocked(event string, fields map[string]any, fn func(learner.State) (learner.State, int)) bool {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	today := a.now()
	next, delta := fn(a.reload(ctx, today))
	next.Normalize()
	if err := a.persistState(ctx, next); err != nil {
		a.view.FlashStatus("Save failed, progress not recorded")
		return false
	}
	a.state = next
	if fields == nil {
		fields = map[string]any{}
	}
	if delta != 0 {
		fields["xp_delta"] = delta
	}
	a.logger.Event(event, fields)
	if delta > 0 {
		a.logger.Event(telemetry.EventXPGranted, map[string]any{"amount": delta, "total": next.XP})
		a.view.FlashXP(delta)
	}
	a.pushAllLocked()
	return true
}

func (a *App) mutate(event string, fields map[string]any, fn func(learner.State) (learner.State, int)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mutateLocked(event, fields, fn)
}

func (a *App) OnSelectCourse(courseID string) {
	if _, ok := a.cat.CourseByID(courseID); !ok {
		return
	}
	a.mutate("course.selected", map[string]any{"course": courseID}, func(s learner.State) (learner.State, int) {
		return learner.SelectCourse(s, courseID), 0
	})
}

func (a *App) OnCompleteLesson(courseID string) {
	if _, ok := a.cat.CourseByID(courseID); !ok {
		return
	}
	a.mutate(telemetry.EventLessonCompleted, map[string]any{"course": courseID}, func(s learner.State) (learner.State, int) {
		s = learner.SelectCourse(s, courseID)
		return learner.CompleteLessonStep(s, courseID)
	})
}

func (a *App) OnClaimBoost() {
	a.mutate("boost.claimed", nil, func(s learner.State) (learner.State, int) {
		return learner.GrantBonusXP(s, learner.BoostXP)
	})
}

func (a *App) OnToggleRoadmapStep(stepID string) {
	a.mutate(telemetry.EventRoadmapToggled, map[string]any{"step": stepID}, func(s learner.State) (learner.State, int) {
		return learner.ToggleRoadmapStep(s, roadmapCourseKey(s), stepID)
	})
}

func (a *App) OnAnswerQuiz(questionID string, choiceIndex int) {
	var q catalog.MCQ
	found := false
	for _, cand := range a.cat.MCQs {
		if cand.QuestionID == questionID {
			q = cand
			found = true
			break
		}
	}
	if !found || choiceIndex < 0 || choiceIndex >= len(q.Options) {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, answered := a.quizAnswers[questionID]; answered {
		return
	}
	correct := false
	ok := a.mutateLocked(telemetry.EventMCQAnswered, map[string]any{"question": questionID}, func(s learner.State) (learner.State, int) {
		next, delta, right := learner.AnswerMCQ(s, choiceIndex, q.AnswerIndex)
		correct = right
		return next, delta
	})
	if !ok {
		return
	}
	a.quizAnswers[questionID] = quizAnswer{Chosen: choiceIndex, Correct: correct}
	if !correct {
		a.view.FlashStatus("Not quite")
	}
	a.pushAllLocked()
}

func (a *App) OnSaveDraft(questionID, code string) {
	if _, ok := a.cat.CodingByID(questionID); !ok {
		return
	}
	a.mutate(telemetry.EventDraftSaved, map[string]any{"question": questionID, "bytes": len(code)}, func(s learner.State) (learner.State, int) {
		return learner.SaveCodingDraft(s, questionID, code), 0
	})
	a.view.FlashStatus("Draft saved")
}

func (a *App) OnStartAssessment() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.session.Reset()
	a.assessResult = nil
	limit := time.Duration(a.cat.Assessment.TimeSeconds) * time.Second
	a.session.Start(a.cat.Assessment.Questions, limit, a.now())
	a.logger.Event(telemetry.EventAssessmentStart, map[string]any{
		"questions":     len(a.cat.Assessment.Questions),
		"limit_seconds": a.cat.Assessment.TimeSeconds,
	})
	a.pushAssessmentLocked()
}

func (a *App) OnAssessmentAnswer(questionID string, choiceIndex int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.session.RecordAnswer(questionID, choiceIndex) {
		return
	}
	a.pushAssessmentLocked()
}

// OnSubmitAssessment handles both the manual submit and the countdown
// auto-submit; the session makes the pair idempotent.
func (a *App) OnSubmitAssessment(auto bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	res, ok := a.session.Submit(now, auto)
	if !ok {
		a.pushAssessmentLocked()
		return
	}
	a.assessResult = &res
	a.mutateLocked(telemetry.EventAssessmentSubmit, map[string]any{
		"score":   res.ScorePercent,
		"correct": res.Correct,
		"total":   res.Total,
		"auto":    auto,
	}, func(s learner.State) (learner.State, int) {
		return learner.RecordAssessmentResult(s, res.ScorePercent, res.BonusXP, now)
	})
	a.pushAssessmentLocked()
}

func (a *App) OnAbandonAssessment() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.Reset()
	a.assessResult = nil
	a.logger.Event(telemetry.EventAssessmentSubmit, map[string]any{"abandoned": true})
	a.pushAssessmentLocked()
}

func (a *App) OnToggleLike(postID string) {
	a.mutate("post.liked", map[string]any{"post": postID}, func(s learner.State) (learner.State, int) {
		return learner.ToggleLike(s, postID), 0
	})
}

func (a *App) OnAddComment(postID, body string) {
	accepted := false
	a.mutate("post.commented", map[string]any{"post": postID}, func(s learner.State) (learner.State, int) {
		next := learner.AddComment(s, postID, body)
		accepted = len(next.Community.Comments[postID]) > len(s.Community.Comments[postID])
		return next, 0
	})
	if accepted {
		a.view.FlashStatus("Comment posted")
	}
}

func (a *App) OnResetProgress() {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	next := learner.ResetProgress(a.now())
	if err := a.persistState(ctx, next); err != nil {
		a.view.FlashStatus("Reset failed")
		return
	}
	a.state = next
	a.quizAnswers = map[string]quizAnswer{}
	a.session.Reset()
	a.assessResult = nil
	a.logger.Event(telemetry.EventStateReset, nil)
	a.view.FlashStatus("Progress reset")
	a.pushAllLocked()
	a.pushAssessmentLocked()
}

func (a *App) OnCycleTheme() {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	next := ui.NextVariant(a.theme)
	if err := a.writeThemeDoc(ctx, next); err != nil {
		a.logger.Error(telemetry.EventStoreError, err, map[string]any{"op": "write_theme"})
	}
	a.theme = next
	a.view.SetTheme(next)
	a.view.FlashStatus("Theme: " + next)
}

func (a *App) OnQuit() {
	a.view.Stop()
}

// View-model builders. All run with a.mu held.

func (a *App) pushAllLocked() {
	s := a.state
	a.view.SetDashboard(a.dashboardState(s))
	a.view.SetCourses(a.coursesState(s))
	a.view.SetRoadmap(a.roadmapState(s))
	a.view.SetQuiz(a.quizState())
	a.view.SetCoding(a.codingState(s))
	a.view.SetCommunity(a.communityState(s))
	a.view.SetLeaderboard(a.leaderboardState(s))
}

func (a *App) dashboardState(s learner.State) ui.DashboardState {
	rank := learner.ComputeRank(s.XP)
	d := ui.DashboardState{
		UserName:      a.user.Name,
		RankName:      rank.Name,
		RankTop:       rank.Top,
		PercentToNext: rank.PercentToNext,
		XP:            s.XP,
		StreakCount:   s.Streak.Count,
		StreakDate:    s.Streak.LastDate,
		Quote:         a.dailyQuote(a.now()),
		CourseID:      s.SelectedCourseID,
		LastScore:     s.Assessment.LastScore,
		LastTakenAt:   s.Assessment.LastTakenAt,
	}
	if course, ok := a.cat.CourseByID(s.SelectedCourseID); ok {
		d.CourseTitle = course.Title
		d.Progress = s.CourseProgress[course.CourseID]
	}
	return d
}

func (a *App) dailyQuote(today time.Time) string {
	quotes := a.cat.Quotes
	if len(quotes) == 0 {
		return ""
	}
	return quotes[today.YearDay()%len(quotes)]
}

func (a *App) coursesState(s learner.State) ui.CoursesState {
	rows := make([]ui.CourseRow, 0, len(a.cat.Courses))
	for _, c := range a.cat.Courses {
		rows = append(rows, ui.CourseRow{
			CourseID:      c.CourseID,
			Title:         c.Title,
			DescriptionMD: c.DescriptionMD,
			Progress:      s.CourseProgress[c.CourseID],
			Selected:      c.CourseID == s.SelectedCourseID,
			Lessons:       len(c.Lessons),
		})
	}
	return ui.CoursesState{Rows: rows}
}

func (a *App) roadmapState(s learner.State) ui.RoadmapState {
	courseSteps := s.CourseRoadmapDone[roadmapCourseKey(s)]
	rows := make([]ui.RoadmapRow, 0, len(a.cat.Roadmap))
	for _, step := range a.cat.Roadmap {
		rows = append(rows, ui.RoadmapRow{
			StepID:        step.StepID,
			Title:         step.Title,
			DescriptionMD: step.DescriptionMD,
			Done:          courseSteps[step.StepID] || s.RoadmapDone[step.StepID],
		})
	}
	return ui.RoadmapState{Rows: rows}
}

func (a *App) quizState() ui.QuizState {
	qs := make([]ui.QuizQuestion, 0, len(a.cat.MCQs))
	for _, q := range a.cat.MCQs {
		row := ui.QuizQuestion{
			QuestionID: q.QuestionID,
			Prompt:     q.Prompt,
			Options:    append([]string(nil), q.Options...),
		}
		if ans, ok := a.quizAnswers[q.QuestionID]; ok {
			row.Answered = true
			row.Chosen = ans.Chosen
			row.Correct = ans.Correct
		}
		qs = append(qs, row)
	}
	return ui.QuizState{Questions: qs}
}

func (a *App) codingState(s learner.State) ui.CodingState {
	rows := make([]ui.CodingRow, 0, len(a.cat.Coding))
	for _, q := range a.cat.Coding {
		rows = append(rows, ui.CodingRow{
			QuestionID: q.QuestionID,
			Title:      q.Title,
			PromptMD:   q.PromptMD,
			Draft:      s.CodingDrafts[q.QuestionID],
			Starter:    q.Starter,
		})
	}
	return ui.CodingState{Rows: rows}
}

func (a *App) communityState(s learner.State) ui.CommunityState {
	posts := make([]ui.PostRow, 0, len(a.cat.Community))
	for _, p := range a.cat.Community {
		posts = append(posts, ui.PostRow{
			PostID:   p.PostID,
			Author:   p.Author,
			Body:     p.Body,
			Likes:    s.Community.Likes[p.PostID],
			Comments: append([]string(nil), s.Community.Comments[p.PostID]...),
		})
	}
	return ui.CommunityState{Posts: posts}
}

func (a *App) leaderboardState(s learner.State) ui.LeaderboardState {
	rows := make([]ui.LeaderboardRow, 0, len(a.cat.Leaderboard)+1)
	for _, e := range a.cat.Leaderboard {
		rows = append(rows, ui.LeaderboardRow{Name: e.Name, XP: e.XP})
	}
	rows = append(rows, ui.LeaderboardRow{Name: a.user.Name, XP: s.XP, You: true})
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].XP > rows[j].XP })
	return ui.LeaderboardState{Rows: rows}
}

func (a *App) pushAssessmentLocked() {
	now := a.now()
	st := ui.AssessmentState{
		Status:    a.session.Status().String(),
		TimeLimit: time.Duration(a.cat.Assessment.TimeSeconds) * time.Second,
		Questions: a.assessmentQuestions(),
	}
	if a.session.Status() == assessment.StatusRunning {
		st.DeadlineAt = now.Add(a.session.Remaining(now))
	}
	if a.assessResult != nil {
		st.Result = ui.AssessmentResultState{
			Visible:      true,
			ScorePercent: a.assessResult.ScorePercent,
			BonusXP:      a.assessResult.BonusXP,
			Correct:      a.assessResult.Correct,
			Total:        a.assessResult.Total,
			Auto:         a.assessResult.Auto,
		}
	}
	a.view.SetAssessment(st)
}

func (a *App) assessmentQuestions() []ui.QuizQuestion {
	source := a.cat.Assessment.Questions
	if a.session.Status() != assessment.StatusIdle {
		source = a.session.Questions()
	}
	qs := make([]ui.QuizQuestion, 0, len(source))
	for _, q := range source {
		row := ui.QuizQuestion{
			QuestionID: q.QuestionID,
			Prompt:     q.Prompt,
			Options:    append([]string(nil), q.Options...),
		}
		if chosen, ok := a.session.Answer(q.QuestionID); ok {
			row.Answered = true
			row.Chosen = chosen
		}
		qs = append(qs, row)
	}
	return qs
}

func roadmapCourseKey(s learner.State) string {
	if s.SelectedCourseID != "" {
		return s.SelectedCourseID
	}
	return "general"
}

var _ ui.Controller = (*App)(nil)
