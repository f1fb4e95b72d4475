package main

import (
	"skilltrack/internal/ui"
)

// Renders the TUI with canned data and no controller, for eyeballing
// theme and layout changes without touching a real database.
func main() {
	v := ui.New(ui.Options{StyleVariant: "modern_arcade", MotionLevel: "full"})
	score := 75
	v.SetDashboard(ui.DashboardState{
		UserName:      "preview",
		RankName:      "Gopher",
		PercentToNext: 40,
		XP:            320,
		StreakCount:   6,
		StreakDate:    "2026-03-14",
		Quote:         "Clear is better than clever.",
		CourseID:      "go-basics",
		CourseTitle:   "Go Basics",
		Progress:      30,
		LastScore:     &score,
		LastTakenAt:   "2026-03-13T18:02:00Z",
	})
	v.SetLeaderboard(ui.LeaderboardState{Rows: []ui.LeaderboardRow{
		{Name: "mira", XP: 980},
		{Name: "preview", XP: 320, You: true},
		{Name: "deni", XP: 120},
	}})
	v.SetScreen(ui.ScreenDashboard)
	_ = v.Run()
}
