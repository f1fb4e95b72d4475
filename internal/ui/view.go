package ui

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	clog "github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
)

type applyMsg struct {
	fn func(*Root)
}

type clockMsg time.Time
type animateMsg time.Time
type assessTickMsg struct {
	gen int
}

type trackKeyMap struct {
	Dashboard   key.Binding
	Courses     key.Binding
	Roadmap     key.Binding
	Quiz        key.Binding
	Coding      key.Binding
	Assessment  key.Binding
	Community   key.Binding
	Leaderboard key.Binding
	Theme       key.Binding
	Quit        key.Binding
}

func (k trackKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dashboard, k.Courses, k.Roadmap, k.Quiz, k.Assessment, k.Theme, k.Quit}
}

func (k trackKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dashboard, k.Courses, k.Roadmap, k.Quiz},
		{k.Coding, k.Assessment, k.Community, k.Leaderboard},
		{k.Theme, k.Quit},
	}
}

type Root struct {
	theme   Theme
	variant string
	ascii   bool
	motion  string
	ctrl    Controller

	mu      sync.Mutex
	program *tea.Program
	running bool

	screen Screen
	layout LayoutMode
	cols   int
	rows   int

	dashboard   DashboardState
	courses     CoursesState
	roadmap     RoadmapState
	quiz        QuizState
	coding      CodingState
	assessment  AssessmentState
	community   CommunityState
	leaderboard LeaderboardState

	courseIndex  int
	roadmapIndex int
	quizIndex    int
	quizChoice   int
	codingIndex  int
	assessIndex  int
	assessChoice int
	postIndex    int

	statusFlash string
	xpFlash     string
	flashUntil  time.Time

	assessGen int
	tickArmed bool

	resetOpen    bool
	resetIndex   int
	abandonOpen  bool
	abandonIndex int
	commentOpen  bool
	commentInput textinput.Model
	draftOpen    bool
	draftInput   textarea.Model

	help      help.Model
	keymap    trackKeyMap
	courseBar progress.Model
	rankBar   progress.Model
	timerSpin spinner.Model
	markdown  *glamour.TermRenderer
	logger    *clog.Logger

	overlayPos float64
	overlayVel float64
	spring     harmonica.Spring

	lastInputEvent string
}

type Options struct {
	ASCIIOnly    bool
	Debug        bool
	StyleVariant string
	MotionLevel  string
}

func New(opts Options) *Root {
	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "skilltrack-ui", Level: clog.WarnLevel})
	if opts.Debug {
		logger.SetLevel(clog.DebugLevel)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(72),
	)
	if err != nil {
		renderer = nil
	}

	h := help.New()
	h.Styles = help.DefaultDarkStyles()

	variant := normalizeStyleVariant(opts.StyleVariant)
	motion := normalizeMotionLevel(opts.MotionLevel)
	theme := ThemeForVariant(variant)

	spring := harmonica.NewSpring(harmonica.FPS(60), 10.0, 0.8)
	switch motion {
	case "reduced":
		spring = harmonica.NewSpring(harmonica.FPS(30), 9.0, 0.92)
	case "off":
		spring = harmonica.NewSpring(harmonica.FPS(60), 1000.0, 1.0)
	}

	courseBar := progress.New(
		progress.WithWidth(24),
		progress.WithColors(lipgloss.Color("#5EC2FF"), lipgloss.Color("#79E6A6"), lipgloss.Color("#F2D16B")),
		progress.WithScaled(true),
	)
	rankBar := progress.New(
		progress.WithWidth(24),
		progress.WithColors(lipgloss.Color("#F2D16B"), lipgloss.Color("#FF9F68"), lipgloss.Color("#FF6B81")),
		progress.WithScaled(true),
	)
	if motion == "off" {
		courseBar.SetSpringOptions(1000.0, 1.0)
		rankBar.SetSpringOptions(1000.0, 1.0)
	}
	timerSpin := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(theme.Accent),
	)

	comment := textinput.New()
	comment.Placeholder = "Write a comment"
	draft := textarea.New()
	draft.Placeholder = "Write your solution"

	r := &Root{
		theme:        theme,
		variant:      variant,
		ascii:        opts.ASCIIOnly,
		motion:       motion,
		screen:       ScreenDashboard,
		layout:       LayoutWide,
		cols:         120,
		rows:         30,
		help:         h,
		courseBar:    courseBar,
		rankBar:      rankBar,
		timerSpin:    timerSpin,
		markdown:     renderer,
		logger:       logger,
		spring:       spring,
		commentInput: comment,
		draftInput:   draft,
		quizChoice:   0,
	}
	r.keymap = trackKeyMap{
		Dashboard:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "Dashboard")),
		Courses:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "Courses")),
		Roadmap:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "Roadmap")),
		Quiz:        key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "Quiz")),
		Coding:      key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "Coding")),
		Assessment:  key.NewBinding(key.WithKeys("6"), key.WithHelp("6", "Assessment")),
		Community:   key.NewBinding(key.WithKeys("7"), key.WithHelp("7", "Community")),
		Leaderboard: key.NewBinding(key.WithKeys("8"), key.WithHelp("8", "Leaderboard")),
		Theme:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "Theme")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("^Q", "Quit")),
	}
	return r
}

func (r *Root) Init() tea.Cmd {
	return tea.Batch(clockTickCmd(), spinnerTickCmd(r.timerSpin))
}

func (r *Root) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("update", rec, msg)
			model = r
			cmd = nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.cols = msg.Width
		r.rows = msg.Height
		r.layout = DetermineLayoutMode(r.cols, r.rows)
		return r, nil
	case applyMsg:
		if msg.fn != nil {
			msg.fn(r)
		}
		return r, tea.Batch(r.animateIfNeeded(), r.armAssessTick())
	case clockMsg:
		if !r.flashUntil.IsZero() && time.Now().After(r.flashUntil) {
			r.statusFlash = ""
			r.xpFlash = ""
			r.flashUntil = time.Time{}
		}
		return r, clockTickCmd()
	case animateMsg:
		target := 0.0
		if r.overlayActive() {
			target = 1.0
		}
		r.overlayPos, r.overlayVel = r.spring.Update(r.overlayPos, r.overlayVel, target)
		if r.shouldAnimate(target) {
			return r, animateTickCmd()
		}
		r.overlayPos = target
		r.overlayVel = 0
		return r, nil
	case assessTickMsg:
		return r.handleAssessTick(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		r.timerSpin, cmd = r.timerSpin.Update(msg)
		return r, cmd
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *Root) View() (view tea.View) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("view", rec, nil)
			width := max(1, r.cols)
			msg := "UI recovered from a rendering panic. Check logs."
			view = tea.NewView(r.theme.Bad.Width(width).Render(trimForWidth(msg, max(1, width-1))))
		}
	}()

	if r.cols < 1 {
		r.cols = 120
	}
	if r.rows < 1 {
		r.rows = 30
	}

	mode := DetermineLayoutMode(r.cols, r.rows)
	r.layout = mode
	if mode == LayoutTooSmall {
		panel := r.drawPanel("Resize Required", []string{
			"Terminal too small",
			fmt.Sprintf("Current: %dx%d", r.cols, r.rows),
			"Minimum: 70x20",
			"Resize the terminal to continue.",
		}, min(50, r.cols), min(10, r.rows))
		v := tea.NewView(lipgloss.Place(r.cols, r.rows, lipgloss.Center, lipgloss.Center, panel))
		v.AltScreen = true
		return v
	}

	var body string
	switch r.screen {
	case ScreenDashboard:
		body = r.renderDashboard()
	case ScreenCourses:
		body = r.renderCourses()
	case ScreenRoadmap:
		body = r.renderRoadmap()
	case ScreenQuiz:
		body = r.renderQuiz()
	case ScreenCoding:
		body = r.renderCoding()
	case ScreenAssessment:
		body = r.renderAssessment()
	case ScreenCommunity:
		body = r.renderCommunity()
	default:
		body = r.renderLeaderboard()
	}

	base := r.headerText() + "\n" + body + "\n" + r.statusText()
	if overlay := r.renderOverlay(); overlay != "" {
		base = composeOverlay(base, overlay, r.cols, r.rows)
	}
	v := tea.NewView(base)
	v.AltScreen = true
	return v
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	return err
}

func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (r *Root) SetController(c Controller) {
	r.ctrl = c
}

func (r *Root) SetScreen(screen Screen) {
	r.apply(func(m *Root) {
		m.screen = screen
	})
}

func (r *Root) SetTheme(variant string) {
	r.apply(func(m *Root) {
		m.variant = normalizeStyleVariant(variant)
		m.theme = ThemeForVariant(m.variant)
		m.timerSpin = spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(m.theme.Accent),
		)
	})
}

func (r *Root) SetDashboard(s DashboardState) {
	r.apply(func(m *Root) {
		m.dashboard = s
	})
}

func (r *Root) SetCourses(s CoursesState) {
	r.apply(func(m *Root) {
		m.courses = s
		if m.courseIndex >= len(s.Rows) {
			m.courseIndex = max(0, len(s.Rows)-1)
		}
	})
}

func (r *Root) SetRoadmap(s RoadmapState) {
	r.apply(func(m *Root) {
		m.roadmap = s
		if m.roadmapIndex >= len(s.Rows) {
			m.roadmapIndex = max(0, len(s.Rows)-1)
		}
	})
}

func (r *Root) SetQuiz(s QuizState) {
	r.apply(func(m *Root) {
		m.quiz = s
		if m.quizIndex >= len(s.Questions) {
			m.quizIndex = max(0, len(s.Questions)-1)
		}
		m.quizChoice = clampChoice(m.quizChoice, currentOptions(s.Questions, m.quizIndex))
	})
}

func (r *Root) SetCoding(s CodingState) {
	r.apply(func(m *Root) {
		m.coding = s
		if m.codingIndex >= len(s.Rows) {
			m.codingIndex = max(0, len(s.Rows)-1)
		}
	})
}

// SetAssessment replaces the assessment view state. Any transition away from
// running bumps the tick generation so in-flight countdown ticks become
// no-ops; a fresh running attempt starts a new tick chain.
func (r *Root) SetAssessment(s AssessmentState) {
	r.apply(func(m *Root) {
		prev := m.assessment.Status
		m.assessment = s
		if s.Status != prev {
			m.assessGen++
			m.tickArmed = false
		}
		if s.Status == "running" && prev != "running" {
			m.assessIndex = 0
			m.assessChoice = 0
		}
		if m.assessIndex >= len(s.Questions) {
			m.assessIndex = max(0, len(s.Questions)-1)
		}
	})
}

func (r *Root) SetCommunity(s CommunityState) {
	r.apply(func(m *Root) {
		m.community = s
		if m.postIndex >= len(s.Posts) {
			m.postIndex = max(0, len(s.Posts)-1)
		}
	})
}

func (r *Root) SetLeaderboard(s LeaderboardState) {
	r.apply(func(m *Root) {
		m.leaderboard = s
	})
}

func (r *Root) FlashStatus(msg string) {
	r.apply(func(m *Root) {
		m.statusFlash = msg
		m.flashUntil = time.Now().Add(3 * time.Second)
	})
}

func (r *Root) FlashXP(delta int) {
	if delta == 0 {
		return
	}
	r.apply(func(m *Root) {
		m.xpFlash = fmt.Sprintf("+%d XP", delta)
		if delta < 0 {
			m.xpFlash = fmt.Sprintf("%d XP", delta)
		}
		m.flashUntil = time.Now().Add(3 * time.Second)
	})
}

func (r *Root) apply(fn func(*Root)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.program
	running := r.running
	if !running || p == nil {
		fn(r)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(applyMsg{fn: fn})
}

func (r *Root) dispatchController(fn func(Controller)) {
	if fn == nil || r.ctrl == nil {
		return
	}
	ctrl := r.ctrl
	go fn(ctrl)
}

// armAssessTick keeps exactly one live countdown tick chain per running
// attempt.
func (r *Root) armAssessTick() tea.Cmd {
	if r.assessment.Status != "running" || r.tickArmed {
		return nil
	}
	r.tickArmed = true
	gen := r.assessGen
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg { return assessTickMsg{gen: gen} })
}

func (r *Root) handleAssessTick(msg assessTickMsg) (tea.Model, tea.Cmd) {
	r.tickArmed = false
	if msg.gen != r.assessGen || r.assessment.Status != "running" {
		return r, nil
	}
	if !time.Now().Before(r.assessment.DeadlineAt) {
		r.dispatchController(func(c Controller) { c.OnSubmitAssessment(true) })
		return r, nil
	}
	return r, r.armAssessTick()
}

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	r.lastInputEvent = trimForWidth(fmt.Sprintf("key:%v mod:%v", msg.Code, msg.Mod), 120)

	if key.Matches(msg, r.keymap.Quit) {
		r.dispatchController(func(c Controller) { c.OnQuit() })
		return r, nil
	}
	if r.overlayActive() {
		return r.handleOverlayKey(msg)
	}

	switch {
	case key.Matches(msg, r.keymap.Dashboard):
		r.screen = ScreenDashboard
		return r, nil
	case key.Matches(msg, r.keymap.Courses):
		r.screen = ScreenCourses
		return r, nil
	case key.Matches(msg, r.keymap.Roadmap):
		r.screen = ScreenRoadmap
		return r, nil
	case key.Matches(msg, r.keymap.Quiz):
		r.screen = ScreenQuiz
		return r, nil
	case key.Matches(msg, r.keymap.Coding):
		r.screen = ScreenCoding
		return r, nil
	case key.Matches(msg, r.keymap.Assessment):
		r.screen = ScreenAssessment
		return r, nil
	case key.Matches(msg, r.keymap.Community):
		r.screen = ScreenCommunity
		return r, nil
	case key.Matches(msg, r.keymap.Leaderboard):
		r.screen = ScreenLeaderboard
		return r, nil
	case key.Matches(msg, r.keymap.Theme):
		r.dispatchController(func(c Controller) { c.OnCycleTheme() })
		return r, nil
	}

	switch r.screen {
	case ScreenDashboard:
		return r.handleDashboardKey(msg)
	case ScreenCourses:
		return r.handleCoursesKey(msg)
	case ScreenRoadmap:
		return r.handleRoadmapKey(msg)
	case ScreenQuiz:
		return r.handleQuizKey(msg)
	case ScreenCoding:
		return r.handleCodingKey(msg)
	case ScreenAssessment:
		return r.handleAssessmentKey(msg)
	case ScreenCommunity:
		return r.handleCommunityKey(msg)
	}
	return r, nil
}

func (r *Root) handleDashboardKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.Code {
	case 'c':
		if id := r.dashboard.CourseID; id != "" {
			r.dispatchController(func(c Controller) { c.OnCompleteLesson(id) })
		}
	case 'b':
		r.dispatchController(func(c Controller) { c.OnClaimBoost() })
	case 'r':
		r.resetOpen = true
		r.resetIndex = 0
		return r, r.animateIfNeeded()
	}
	return r, nil
}

func (r *Root) handleCoursesKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	rows := r.courses.Rows
	switch msg.Code {
	case tea.KeyUp:
		r.courseIndex = wrapIndex(r.courseIndex-1, len(rows))
	case tea.KeyDown, tea.KeyTab:
		r.courseIndex = wrapIndex(r.courseIndex+1, len(rows))
	case tea.KeyEnter:
		if len(rows) > 0 {
			id := rows[wrapIndex(r.courseIndex, len(rows))].CourseID
			r.dispatchController(func(c Controller) { c.OnSelectCourse(id) })
		}
	case 'c':
		if len(rows) > 0 {
			id := rows[wrapIndex(r.courseIndex, len(rows))].CourseID
			r.dispatchController(func(c Controller) { c.OnCompleteLesson(id) })
		}
	}
	return r, nil
}

func (r *Root) handleRoadmapKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	rows := r.roadmap.Rows
	switch msg.Code {
	case tea.KeyUp:
		r.roadmapIndex = wrapIndex(r.roadmapIndex-1, len(rows))
	case tea.KeyDown, tea.KeyTab:
		r.roadmapIndex = wrapIndex(r.roadmapIndex+1, len(rows))
	case tea.KeyEnter, tea.KeySpace:
		if len(rows) > 0 {
			id := rows[wrapIndex(r.roadmapIndex, len(rows))].StepID
			r.dispatchController(func(c Controller) { c.OnToggleRoadmapStep(id) })
		}
	}
	return r, nil
}

func (r *Root) handleQuizKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	qs := r.quiz.Questions
	switch msg.Code {
	case tea.KeyLeft:
		r.quizIndex = wrapIndex(r.quizIndex-1, len(qs))
		r.quizChoice = 0
	case tea.KeyRight, tea.KeyTab:
		r.quizIndex = wrapIndex(r.quizIndex+1, len(qs))
		r.quizChoice = 0
	case tea.KeyUp:
		r.quizChoice = wrapIndex(r.quizChoice-1, currentOptions(qs, r.quizIndex))
	case tea.KeyDown:
		r.quizChoice = wrapIndex(r.quizChoice+1, currentOptions(qs, r.quizIndex))
	case tea.KeyEnter:
		if len(qs) > 0 {
			q := qs[wrapIndex(r.quizIndex, len(qs))]
			if q.Answered {
				return r, nil
			}
			choice := r.quizChoice
			r.dispatchController(func(c Controller) { c.OnAnswerQuiz(q.QuestionID, choice) })
		}
	}
	return r, nil
}

func (r *Root) handleCodingKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	rows := r.coding.Rows
	switch msg.Code {
	case tea.KeyUp:
		r.codingIndex = wrapIndex(r.codingIndex-1, len(rows))
	case tea.KeyDown, tea.KeyTab:
		r.codingIndex = wrapIndex(r.codingIndex+1, len(rows))
	case tea.KeyEnter:
		if len(rows) == 0 {
			return r, nil
		}
		row := rows[wrapIndex(r.codingIndex, len(rows))]
		seed := row.Draft
		if seed == "" {
			seed = row.Starter
		}
		r.draftInput.SetValue(seed)
		r.draftInput.SetWidth(max(30, min(80, r.cols-10)))
		r.draftInput.SetHeight(max(6, min(16, r.rows-10)))
		r.draftOpen = true
		return r, tea.Batch(r.draftInput.Focus(), r.animateIfNeeded())
	}
	return r, nil
}

func (r *Root) handleAssessmentKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch r.assessment.Status {
	case "running":
		qs := r.assessment.Questions
		switch msg.Code {
		case tea.KeyLeft:
			r.assessIndex = wrapIndex(r.assessIndex-1, len(qs))
			r.assessChoice = 0
		case tea.KeyRight, tea.KeyTab:
			r.assessIndex = wrapIndex(r.assessIndex+1, len(qs))
			r.assessChoice = 0
		case tea.KeyUp:
			r.assessChoice = wrapIndex(r.assessChoice-1, currentOptions(qs, r.assessIndex))
		case tea.KeyDown:
			r.assessChoice = wrapIndex(r.assessChoice+1, currentOptions(qs, r.assessIndex))
		case tea.KeyEnter:
			if len(qs) > 0 {
				q := qs[wrapIndex(r.assessIndex, len(qs))]
				choice := r.assessChoice
				r.dispatchController(func(c Controller) { c.OnAssessmentAnswer(q.QuestionID, choice) })
			}
		case 's', 'S':
			r.dispatchController(func(c Controller) { c.OnSubmitAssessment(false) })
		case tea.KeyEsc:
			r.abandonOpen = true
			r.abandonIndex = 0
			return r, r.animateIfNeeded()
		}
	default:
		if msg.Code == tea.KeyEnter {
			r.dispatchController(func(c Controller) { c.OnStartAssessment() })
		}
	}
	return r, nil
}

func (r *Root) handleCommunityKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	posts := r.community.Posts
	switch msg.Code {
	case tea.KeyUp:
		r.postIndex = wrapIndex(r.postIndex-1, len(posts))
	case tea.KeyDown, tea.KeyTab:
		r.postIndex = wrapIndex(r.postIndex+1, len(posts))
	case 'l':
		if len(posts) > 0 {
			id := posts[wrapIndex(r.postIndex, len(posts))].PostID
			r.dispatchController(func(c Controller) { c.OnToggleLike(id) })
		}
	case 'c':
		if len(posts) > 0 {
			r.commentInput.SetValue("")
			r.commentInput.SetWidth(max(30, min(70, r.cols-12)))
			r.commentOpen = true
			return r, tea.Batch(r.commentInput.Focus(), r.animateIfNeeded())
		}
	}
	return r, nil
}

func (r *Root) handleOverlayKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch r.topOverlay() {
	case "draft":
		switch {
		case msg.Code == tea.KeyEsc:
			r.draftOpen = false
			r.draftInput.Blur()
			return r, r.animateIfNeeded()
		case msg.Code == 's' && msg.Mod&tea.ModCtrl != 0:
			rows := r.coding.Rows
			if len(rows) > 0 {
				row := rows[wrapIndex(r.codingIndex, len(rows))]
				code := r.draftInput.Value()
				r.dispatchController(func(c Controller) { c.OnSaveDraft(row.QuestionID, code) })
			}
			r.draftOpen = false
			r.draftInput.Blur()
			return r, r.animateIfNeeded()
		default:
			var cmd tea.Cmd
			r.draftInput, cmd = r.draftInput.Update(msg)
			return r, cmd
		}
	case "comment":
		switch msg.Code {
		case tea.KeyEsc:
			r.commentOpen = false
			r.commentInput.Blur()
			return r, r.animateIfNeeded()
		case tea.KeyEnter:
			posts := r.community.Posts
			if len(posts) > 0 {
				id := posts[wrapIndex(r.postIndex, len(posts))].PostID
				body := r.commentInput.Value()
				r.dispatchController(func(c Controller) { c.OnAddComment(id, body) })
			}
			r.commentOpen = false
			r.commentInput.Blur()
			return r, r.animateIfNeeded()
		default:
			var cmd tea.Cmd
			r.commentInput, cmd = r.commentInput.Update(msg)
			return r, cmd
		}
	case "reset":
		switch msg.Code {
		case tea.KeyLeft, tea.KeyUp:
			r.resetIndex = 0
		case tea.KeyRight, tea.KeyDown, tea.KeyTab:
			r.resetIndex = 1
		case tea.KeyEnter:
			confirmed := r.resetIndex == 1
			r.resetOpen = false
			if confirmed {
				r.dispatchController(func(c Controller) { c.OnResetProgress() })
			}
			return r, r.animateIfNeeded()
		case tea.KeyEsc:
			r.resetOpen = false
			return r, r.animateIfNeeded()
		}
	case "abandon":
		switch msg.Code {
		case tea.KeyLeft, tea.KeyUp:
			r.abandonIndex = 0
		case tea.KeyRight, tea.KeyDown, tea.KeyTab:
			r.abandonIndex = 1
		case tea.KeyEnter:
			confirmed := r.abandonIndex == 1
			r.abandonOpen = false
			if confirmed {
				r.dispatchController(func(c Controller) { c.OnAbandonAssessment() })
			}
			return r, r.animateIfNeeded()
		case tea.KeyEsc:
			r.abandonOpen = false
			return r, r.animateIfNeeded()
		}
	case "result":
		switch msg.Code {
		case tea.KeyEnter, tea.KeyEsc:
			r.assessment.Result = AssessmentResultState{}
			return r, r.animateIfNeeded()
		}
	}
	return r, nil
}

func (r *Root) renderDashboard() string {
	w, h := r.cols, r.rows
	bodyH := max(8, h-2)

	var b strings.Builder
	name := firstNonEmptyStr(r.dashboard.UserName, "learner")
	b.WriteString(fmt.Sprintf("Welcome back, %s\n\n", name))
	b.WriteString(fmt.Sprintf("Rank: %s\n", firstNonEmptyStr(r.dashboard.RankName, "Beginner")))
	if r.dashboard.RankTop {
		b.WriteString("Top rank reached\n")
	} else {
		b.WriteString(fmt.Sprintf("To next rank: %d%%\n", r.dashboard.PercentToNext))
	}
	b.WriteString(r.bar(r.rankBar, float64(r.dashboard.PercentToNext)/100) + "\n\n")
	b.WriteString(fmt.Sprintf("XP: %d\n", r.dashboard.XP))
	b.WriteString(fmt.Sprintf("Streak: %d day(s)", r.dashboard.StreakCount))
	if r.dashboard.StreakDate != "" {
		b.WriteString("  (last: " + r.dashboard.StreakDate + ")")
	}
	b.WriteString("\n\n")
	if r.dashboard.CourseTitle != "" {
		b.WriteString(fmt.Sprintf("Current course: %s  %d%%\n", r.dashboard.CourseTitle, r.dashboard.Progress))
		b.WriteString(r.bar(r.courseBar, float64(r.dashboard.Progress)/100) + "\n")
		b.WriteString("c: complete next lesson\n")
	} else {
		b.WriteString("No course selected. Pick one on the Courses screen.\n")
	}
	b.WriteString("\n")
	if r.dashboard.LastScore != nil {
		b.WriteString(fmt.Sprintf("Last assessment: %d%%", *r.dashboard.LastScore))
		if r.dashboard.LastTakenAt != "" {
			b.WriteString("  " + r.dashboard.LastTakenAt)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No assessment taken yet.\n")
	}
	b.WriteString("\nb: claim XP boost    r: reset progress")

	leftW := min(64, max(40, w/2))
	left := r.drawPanel("Progress", splitLines(b.String()), leftW, bodyH)

	var q strings.Builder
	q.WriteString("Quote of the day\n\n")
	q.WriteString(wrapText(firstNonEmptyStr(r.dashboard.Quote, "Keep going."), max(20, w-leftW-6)))
	right := r.drawPanel("Daily", splitLines(q.String()), max(20, w-leftW), bodyH)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (r *Root) renderCourses() string {
	w, h := r.cols, r.rows
	bodyH := max(8, h-2)
	rows := r.courses.Rows

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		prefix := "  "
		if i == wrapIndex(r.courseIndex, len(rows)) {
			prefix = "> "
		}
		marker := " "
		if row.Selected {
			marker = "*"
		}
		lines = append(lines, fmt.Sprintf("%s%s %s  %3d%%", prefix, marker, row.Title, row.Progress))
	}
	if len(lines) == 0 {
		lines = []string{"No courses in the catalog."}
	}
	leftW := min(44, max(28, w/3))
	left := r.drawPanel("Courses", lines, leftW, bodyH)

	detail := "Select a course with Enter. c completes the next lesson."
	if len(rows) > 0 {
		row := rows[wrapIndex(r.courseIndex, len(rows))]
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%s\n\n", row.Title))
		b.WriteString(fmt.Sprintf("Lessons: %d   Progress: %d%%\n", row.Lessons, row.Progress))
		b.WriteString(r.bar(r.courseBar, float64(row.Progress)/100) + "\n\n")
		b.WriteString(r.renderMarkdown(row.DescriptionMD))
		b.WriteString("\n\nEnter: select    c: complete lesson")
		detail = b.String()
	}
	right := r.drawPanel("Details", splitLines(detail), max(24, w-leftW), bodyH)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (r *Root) renderRoadmap() string {
	w, h := r.cols, r.rows
	bodyH := max(8, h-2)
	rows := r.roadmap.Rows

	lines := make([]string, 0, len(rows))
	done := 0
	for i, row := range rows {
		prefix := "  "
		if i == wrapIndex(r.roadmapIndex, len(rows)) {
			prefix = "> "
		}
		icon := "•"
		if r.ascii {
			icon = "o"
		}
		if row.Done {
			done++
			icon = "✓"
			if r.ascii {
				icon = "v"
			}
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", prefix, icon, row.Title))
	}
	if len(lines) == 0 {
		lines = []string{"No roadmap steps."}
	}
	leftW := min(48, max(30, w/3))
	left := r.drawPanel(fmt.Sprintf("Roadmap %d/%d", done, len(rows)), lines, leftW, bodyH)

	detail := "Enter or Space toggles the selected step. First completion grants XP."
	if len(rows) > 0 {
		row := rows[wrapIndex(r.roadmapIndex, len(rows))]
		var b strings.Builder
		b.WriteString(row.Title + "\n\n")
		b.WriteString(r.renderMarkdown(row.DescriptionMD))
		b.WriteString("\n\nEnter/Space: toggle")
		detail = b.String()
	}
	right := r.drawPanel("Step", splitLines(detail), max(24, w-leftW), bodyH)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (r *Root) renderQuiz() string {
	w, h := r.cols, r.rows
	bodyH := max(8, h-2)
	qs := r.quiz.Questions

	lines := make([]string, 0, len(qs))
	for i, q := range qs {
		prefix := "  "
		if i == wrapIndex(r.quizIndex, len(qs)) {
			prefix = "> "
		}
		icon := "•"
		if r.ascii {
			icon = "o"
		}
		if q.Answered {
			if q.Correct {
				icon = "✓"
				if r.ascii {
					icon = "v"
				}
			} else {
				icon = "✗"
				if r.ascii {
					icon = "x"
				}
			}
		}
		lines = append(lines, fmt.Sprintf("%s%s Q%d", prefix, icon, i+1))
	}
	if len(lines) == 0 {
		lines = []string{"No practice questions."}
	}
	leftW := min(24, max(14, w/6))
	left := r.drawPanel("Practice", lines, leftW, bodyH)

	detail := "No question selected."
	if len(qs) > 0 {
		q := qs[wrapIndex(r.quizIndex, len(qs))]
		var b strings.Builder
		b.WriteString(wrapText(q.Prompt, max(24, w-leftW-6)) + "\n\n")
		for i, opt := range q.Options {
			cursor := "  "
			if !q.Answered && i == r.quizChoice {
				cursor = "> "
			}
			mark := " "
			if q.Answered && i == q.Chosen {
				mark = "←"
				if r.ascii {
					mark = "<"
				}
			}
			b.WriteString(fmt.Sprintf("%s%d. %s %s\n", cursor, i+1, opt, mark))
		}
		b.WriteString("\n")
		if q.Answered {
			if q.Correct {
				b.WriteString("Correct! +20 XP\n")
			} else {
				b.WriteString("Not quite. Review the material and move on.\n")
			}
			b.WriteString("\n←/→: other questions")
		} else {
			b.WriteString("↑/↓: choose    Enter: answer    ←/→: other questions")
		}
		detail = b.String()
	}
	right := r.drawPanel(fmt.Sprintf("Question %d/%d", wrapIndex(r.quizIndex, max(1, len(qs)))+1, len(qs)), splitLines(detail), max(24, w-leftW), bodyH)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (r *Root) renderCoding() string {
	w, h := r.cols, r.rows
	bodyH := max(8, h-2)
	rows := r.coding.Rows

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		prefix := "  "
		if i == wrapIndex(r.codingIndex, len(rows)) {
			prefix = "> "
		}
		saved := " "
		if strings.TrimSpace(row.Draft) != "" {
			saved = "*"
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", prefix, saved, row.Title))
	}
	if len(lines) == 0 {
		lines = []string{"No coding questions."}
	}
	leftW := min(40, max(26, w/3))
	left := r.drawPanel("Coding", lines, leftW, bodyH)

	detail := "No coding questions in the catalog."
	if len(rows) > 0 {
		row := rows[wrapIndex(r.codingIndex, len(rows))]
		var b strings.Builder
		b.WriteString(row.Title + "\n\n")
		b.WriteString(r.renderMarkdown(row.PromptMD))
		b.WriteString("\n\nDraft:\n")
		draft := row.Draft
		if strings.TrimSpace(draft) == "" {
			draft = "(no draft saved)"
		}
		b.WriteString(draft)
		b.WriteString("\n\nEnter: edit draft (Ctrl+S saves)")
		detail = b.String()
	}
	right := r.drawPanel("Prompt", splitLines(detail), max(24, w-leftW), bodyH)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (r *Root) renderAssessment() string {
	w, h := r.cols, r.rows
	bodyH := max(8, h-2)

	switch r.assessment.Status {
	case "running":
		qs := r.assessment.Questions
		remaining := time.Until(r.assessment.DeadlineAt)
		if remaining < 0 {
			remaining = 0
		}
		title := fmt.Sprintf("Assessment  %s %s", strings.TrimSpace(r.timerSpin.View()), formatCountdown(remaining))

		detail := "No questions."
		if len(qs) > 0 {
			q := qs[wrapIndex(r.assessIndex, len(qs))]
			var b strings.Builder
			b.WriteString(fmt.Sprintf("Question %d of %d\n\n", wrapIndex(r.assessIndex, len(qs))+1, len(qs)))
			b.WriteString(wrapText(q.Prompt, max(24, w-8)) + "\n\n")
			for i, opt := range q.Options {
				cursor := "  "
				if i == r.assessChoice {
					cursor = "> "
				}
				mark := " "
				if q.Answered && i == q.Chosen {
					mark = "←"
					if r.ascii {
						mark = "<"
					}
				}
				b.WriteString(fmt.Sprintf("%s%d. %s %s\n", cursor, i+1, opt, mark))
			}
			answered := 0
			for _, qq := range qs {
				if qq.Answered {
					answered++
				}
			}
			b.WriteString(fmt.Sprintf("\nAnswered: %d/%d\n", answered, len(qs)))
			b.WriteString("\n↑/↓: choose    Enter: lock answer    ←/→: navigate\ns: submit now    Esc: abandon")
			detail = b.String()
		}
		return r.drawPanel(title, splitLines(detail), w, bodyH)
	default:
		var b strings.Builder
		b.WriteString("Timed assessment\n\n")
		b.WriteString(fmt.Sprintf("Time limit: %s\n", formatCountdown(r.assessment.TimeLimit)))
		b.WriteString(fmt.Sprintf("Questions: %d\n\n", len(r.assessment.Questions)))
		b.WriteString("Scoring: percentage of correct answers, bonus XP up to 80.\n")
		b.WriteString("The attempt auto-submits when the timer runs out.\n\n")
		b.WriteString("Enter: start")
		return r.drawPanel("Assessment", splitLines(b.String()), w, bodyH)
	}
}

func (r *Root) renderCommunity() string {
	w, h := r.cols, r.rows
	bodyH := max(8, h-2)
	posts := r.community.Posts

	lines := make([]string, 0, len(posts)*2)
	for i, p := range posts {
		prefix := "  "
		if i == wrapIndex(r.postIndex, len(posts)) {
			prefix = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%s  ♥%d ✉%d", prefix, p.Author, p.Likes, len(p.Comments)))
	}
	if r.ascii {
		for i := range lines {
			lines[i] = strings.NewReplacer("♥", "<3", "✉", "#").Replace(lines[i])
		}
	}
	if len(lines) == 0 {
		lines = []string{"No posts yet."}
	}
	leftW := min(34, max(22, w/4))
	left := r.drawPanel("Community", lines, leftW, bodyH)

	detail := "No posts."
	if len(posts) > 0 {
		p := posts[wrapIndex(r.postIndex, len(posts))]
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%s\n\n", p.Author))
		b.WriteString(wrapText(p.Body, max(24, w-leftW-6)) + "\n\n")
		b.WriteString(fmt.Sprintf("Likes: %d\n\n", p.Likes))
		if len(p.Comments) > 0 {
			b.WriteString("Comments:\n")
			for _, c := range p.Comments {
				b.WriteString("- " + wrapText(c, max(20, w-leftW-10)) + "\n")
			}
			b.WriteString("\n")
		}
		b.WriteString("l: like    c: comment")
		detail = b.String()
	}
	right := r.drawPanel("Post", splitLines(detail), max(24, w-leftW), bodyH)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (r *Root) renderLeaderboard() string {
	w, h := r.cols, r.rows
	bodyH := max(8, h-2)
	rows := r.leaderboard.Rows

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		marker := "  "
		name := row.Name
		if row.You {
			marker = "> "
			name += " (you)"
		}
		lines = append(lines, fmt.Sprintf("%s%2d. %-24s %6d XP", marker, i+1, name, row.XP))
	}
	if len(lines) == 0 {
		lines = []string{"Leaderboard is empty."}
	}
	return r.drawPanel("Leaderboard", lines, min(64, w), bodyH)
}

func (r *Root) renderOverlay() string {
	top := r.topOverlay()
	if top == "" {
		return ""
	}
	w := min(max(50, r.cols-20), r.cols)

	var title string
	var lines []string
	switch top {
	case "draft":
		rows := r.coding.Rows
		title = "Edit Draft"
		if len(rows) > 0 {
			title = "Edit Draft: " + rows[wrapIndex(r.codingIndex, len(rows))].Title
		}
		lines = splitLines(r.draftInput.View())
		lines = append(lines, "", "Ctrl+S: save    Esc: cancel")
	case "comment":
		posts := r.community.Posts
		title = "Add Comment"
		if len(posts) > 0 {
			title = "Comment on " + posts[wrapIndex(r.postIndex, len(posts))].Author + "'s post"
		}
		lines = splitLines(r.commentInput.View())
		lines = append(lines, "", "Enter: post    Esc: cancel")
	case "reset":
		title = "Confirm Reset"
		lines = []string{"Reset all progress to a fresh state?", "XP, streak, drafts, and answers will be lost.", ""}
		for i, label := range []string{"Cancel", "Reset"} {
			prefix := "  "
			if i == r.resetIndex {
				prefix = "> "
			}
			lines = append(lines, prefix+label)
		}
	case "abandon":
		title = "Abandon Assessment"
		lines = []string{"Leave the running assessment?", "Nothing will be scored or saved.", ""}
		for i, label := range []string{"Keep going", "Abandon"} {
			prefix := "  "
			if i == r.abandonIndex {
				prefix = "> "
			}
			lines = append(lines, prefix+label)
		}
	case "result":
		res := r.assessment.Result
		title = "Assessment Result"
		how := "Submitted"
		if res.Auto {
			how = "Auto-submitted (time expired)"
		}
		lines = []string{
			how,
			"",
			fmt.Sprintf("Score: %d%%", res.ScorePercent),
			fmt.Sprintf("Correct: %d/%d", res.Correct, res.Total),
			fmt.Sprintf("Bonus XP: +%d", res.BonusXP),
			"",
			"Enter: close",
		}
	default:
		return ""
	}
	if len(lines) == 0 {
		lines = []string{"(empty)"}
	}
	h := min(len(lines)+2, max(8, r.rows-4))
	return r.drawPanel(title, lines, w, h)
}

func (r *Root) headerText() string {
	width := max(1, r.cols-1)
	labels := []string{"Dashboard", "Courses", "Roadmap", "Quiz", "Coding", "Assessment", "Community", "Leaderboard"}
	parts := make([]string, 0, len(labels)+1)
	parts = append(parts, "SkillTrack")
	for i, label := range labels {
		tab := fmt.Sprintf("%d %s", i+1, label)
		if Screen(i) == r.screen {
			tab = "[" + tab + "]"
		}
		parts = append(parts, tab)
	}
	txt := trimForWidth(strings.Join(parts, "  "), width)
	return r.theme.Header.Width(max(1, r.cols)).Render(txt)
}

func (r *Root) statusText() string {
	keys := r.help.View(r.keymap)
	if keys == "" {
		keys = "1-8 screens  t theme  ^Q quit"
	}
	if r.xpFlash != "" {
		keys += " | " + r.theme.XPFlash.Render(r.xpFlash)
	}
	if r.statusFlash != "" {
		keys += " | " + r.statusFlash
	}
	keys = trimForWidth(keys, max(1, r.cols-1))
	return r.theme.Status.Width(max(1, r.cols)).Render(keys)
}

func (r *Root) renderMarkdown(md string) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if r.markdown != nil {
		if rendered, err := r.markdown.Render(md); err == nil {
			return strings.TrimSpace(rendered)
		}
	}
	return md
}

func (r *Root) bar(m progress.Model, ratio float64) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	m.SetWidth(24)
	return m.ViewAs(ratio)
}

func (r *Root) topOverlay() string {
	switch {
	case r.draftOpen:
		return "draft"
	case r.commentOpen:
		return "comment"
	case r.resetOpen:
		return "reset"
	case r.abandonOpen:
		return "abandon"
	case r.assessment.Result.Visible:
		return "result"
	}
	return ""
}

func (r *Root) overlayActive() bool {
	return r.topOverlay() != ""
}

func (r *Root) drawPanel(title string, lines []string, width, height int) string {
	width = max(4, width)
	height = max(3, height)
	innerW := width - 2
	innerH := height - 2

	h := "─"
	v := "│"
	tl := "┌"
	tr := "┐"
	bl := "└"
	br := "┘"
	if r.ascii {
		h = "-"
		v = "|"
		tl, tr, bl, br = "+", "+", "+", "+"
	}

	top := tl + strings.Repeat(h, innerW) + tr
	if title != "" && innerW > 2 {
		t := " " + title + " "
		runes := []rune(top)
		for i, ch := range []rune(t) {
			pos := 1 + i
			if pos >= len(runes)-1 {
				break
			}
			runes[pos] = ch
		}
		top = string(runes)
	}

	out := make([]string, 0, height)
	out = append(out, r.theme.PanelBorder.Render(top))
	for row := 0; row < innerH; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		line = padRune(line, innerW)
		out = append(out, r.theme.PanelBorder.Render(v)+r.theme.PanelBody.Render(line)+r.theme.PanelBorder.Render(v))
	}
	out = append(out, r.theme.PanelBorder.Render(bl+strings.Repeat(h, innerW)+br))
	return strings.Join(out, "\n")
}

func (r *Root) animateIfNeeded() tea.Cmd {
	target := 0.0
	if r.overlayActive() {
		target = 1.0
	}
	if r.shouldAnimate(target) {
		return animateTickCmd()
	}
	return nil
}

func (r *Root) shouldAnimate(target float64) bool {
	if r.motion == "off" {
		return false
	}
	if target > 0 {
		return r.overlayPos < 0.999 || absFloat(r.overlayVel) > 0.001
	}
	return r.overlayPos > 0.001 || absFloat(r.overlayVel) > 0.001
}

func (r *Root) onModelPanic(where string, recovered any, msg tea.Msg) {
	if r.statusFlash == "" {
		r.statusFlash = "Recovered UI panic"
	}
	msgType := ""
	if msg != nil {
		msgType = fmt.Sprintf("%T", msg)
	}
	r.logger.Error("ui.panic_recovered",
		"where", where,
		"panic", fmt.Sprintf("%v", recovered),
		"messageType", msgType,
		"screen", int(r.screen),
		"cols", r.cols,
		"rows", r.rows,
		"overlay", r.topOverlay(),
		"last_input", r.lastInputEvent,
		"stack", string(debug.Stack()),
	)
}

func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func animateTickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return animateMsg(t) })
}

func spinnerTickCmd(model spinner.Model) tea.Cmd {
	return func() tea.Msg {
		return model.Tick()
	}
}

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func currentOptions(qs []QuizQuestion, idx int) int {
	if len(qs) == 0 {
		return 0
	}
	return len(qs[wrapIndex(idx, len(qs))].Options)
}

func clampChoice(choice, n int) int {
	if n <= 0 {
		return 0
	}
	if choice < 0 {
		return 0
	}
	if choice >= n {
		return n - 1
	}
	return choice
}

func firstNonEmptyStr(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		i = n - 1
	}
	if i >= n {
		i = 0
	}
	return i
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}
	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		wl := len([]rune(word))
		if lineLen > 0 && lineLen+1+wl > width {
			b.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(word)
		lineLen += wl
	}
	return b.String()
}

func padRune(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(s, "\t", "    "))
	if len(r) > width {
		r = r[:width]
	}
	if len(r) < width {
		r = append(r, []rune(strings.Repeat(" ", width-len(r)))...)
	}
	return string(r)
}

func composeOverlay(base, overlay string, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return base
	}
	base = ansi.Strip(base)
	overlay = ansi.Strip(overlay)
	baseLines := strings.Split(base, "\n")
	if len(baseLines) < rows {
		pad := make([]string, rows-len(baseLines))
		baseLines = append(baseLines, pad...)
	}
	for i := 0; i < rows; i++ {
		baseLines[i] = padRune(baseLines[i], cols)
	}

	overlayLines := strings.Split(strings.TrimRight(overlay, "\n"), "\n")
	if len(overlayLines) == 0 {
		return strings.Join(baseLines[:rows], "\n")
	}
	ow := 1
	for _, line := range overlayLines {
		if lw := len([]rune(line)); lw > ow {
			ow = lw
		}
	}
	ow = min(ow, cols)
	oh := min(len(overlayLines), rows)
	startRow := (rows - oh) / 2
	startCol := max(0, (cols-ow)/2)

	for i := 0; i < oh; i++ {
		row := startRow + i
		if row < 0 || row >= rows {
			continue
		}
		dst := []rune(baseLines[row])
		src := []rune(overlayLines[i])
		if len(src) > ow {
			src = src[:ow]
		}
		for j := 0; j < ow && startCol+j < len(dst); j++ {
			dst[startCol+j] = ' '
		}
		for j := 0; j < len(src) && startCol+j < len(dst); j++ {
			dst[startCol+j] = src[j]
		}
		baseLines[row] = string(dst)
	}
	return strings.Join(baseLines[:rows], "\n")
}

func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(ansi.Strip(s), "\n", " "))
	if len(r) <= width {
		return string(r)
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

func normalizeStyleVariant(v string) string {
	switch strings.TrimSpace(v) {
	case "cozy_clean", "retro_terminal", "modern_arcade":
		return strings.TrimSpace(v)
	default:
		return "modern_arcade"
	}
}

func normalizeMotionLevel(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "reduced", "full":
		return strings.TrimSpace(v)
	default:
		return "full"
	}
}

var _ tea.Model = (*Root)(nil)
var _ View = (*Root)(nil)
