package catalog

// Builtin returns the embedded fallback dataset used when no catalog file
// is available. Small on purpose: enough for every screen to render.
func Builtin() Catalog {
	return Catalog{
		Courses: []Course{
			{
				CourseID:      "go-basics",
				Title:         "Go Basics",
				DescriptionMD: "Syntax, types, and the toolchain. Start here.",
				Lessons:       []string{"Hello, world", "Variables and types", "Control flow", "Functions", "Packages"},
			},
			{
				CourseID:      "data-structures",
				Title:         "Data Structures",
				DescriptionMD: "Slices, maps, and building your own structures.",
				Lessons:       []string{"Slices in depth", "Maps", "Linked lists", "Trees"},
			},
			{
				CourseID:      "concurrency",
				Title:         "Concurrency",
				DescriptionMD: "Goroutines, channels, and the patterns that tie them together.",
				Lessons:       []string{"Goroutines", "Channels", "Select", "Worker pools"},
			},
		},
		MCQs: []MCQ{
			{
				QuestionID:  "mcq-zero-value",
				Prompt:      "What is the zero value of a slice?",
				Options:     []string{"an empty slice", "nil", "a pointer to an empty array", "undefined"},
				AnswerIndex: 1,
			},
			{
				QuestionID:  "mcq-defer-order",
				Prompt:      "In what order do deferred calls run?",
				Options:     []string{"declaration order", "reverse declaration order", "alphabetical", "unspecified"},
				AnswerIndex: 1,
			},
			{
				QuestionID:  "mcq-map-read",
				Prompt:      "Reading a missing key from a map returns:",
				Options:     []string{"a panic", "an error", "the zero value", "nil always"},
				AnswerIndex: 2,
			},
		},
		Coding: []CodingQuestion{
			{
				QuestionID: "code-reverse",
				Title:      "Reverse a string",
				PromptMD:   "Write `Reverse(s string) string` that reverses by rune, not byte.",
				Starter:    "func Reverse(s string) string {\n\t// your code\n}\n",
			},
			{
				QuestionID: "code-fizzbuzz",
				Title:      "FizzBuzz",
				PromptMD:   "Classic FizzBuzz for 1..n, returned as a slice of strings.",
				Starter:    "func FizzBuzz(n int) []string {\n\t// your code\n}\n",
			},
		},
		Assessment: Assessment{
			TimeSeconds: 300,
			Questions: []MCQ{
				{
					QuestionID:  "as-goroutine",
					Prompt:      "A goroutine is best described as:",
					Options:     []string{"an OS thread", "a lightweight thread managed by the runtime", "a process", "a callback"},
					AnswerIndex: 1,
				},
				{
					QuestionID:  "as-channel-nil",
					Prompt:      "Sending on a nil channel:",
					Options:     []string{"panics", "returns an error", "blocks forever", "is a no-op"},
					AnswerIndex: 2,
				},
				{
					QuestionID:  "as-interface",
					Prompt:      "An interface value is nil when:",
					Options:     []string{"its dynamic value is nil", "both its type and value are nil", "it is unassigned in a struct", "never"},
					AnswerIndex: 1,
				},
				{
					QuestionID:  "as-slice-append",
					Prompt:      "append may return:",
					Options:     []string{"the same backing array", "a new backing array", "either, depending on capacity", "always a copy"},
					AnswerIndex: 2,
				},
			},
		},
		Roadmap: []RoadmapStep{
			{StepID: "setup", Title: "Install the toolchain", DescriptionMD: "Go, an editor, and gopls."},
			{StepID: "syntax", Title: "Learn the syntax", DescriptionMD: "Types, functions, methods, interfaces."},
			{StepID: "stdlib", Title: "Tour the standard library", DescriptionMD: "io, net/http, encoding/json."},
			{StepID: "project", Title: "Ship a small project", DescriptionMD: "A CLI or a tiny service, end to end."},
			{StepID: "concurrency", Title: "Get comfortable with concurrency", DescriptionMD: "Goroutines and channels in anger."},
		},
		Community: []Post{
			{PostID: "post-interfaces", Author: "maya", Body: "Small interfaces are the whole trick. Accept them, return structs."},
			{PostID: "post-errors", Author: "deni", Body: "Stopped fighting explicit errors this week. They grew on me."},
			{PostID: "post-streak", Author: "kofi", Body: "30-day streak! The daily habit matters more than the session length."},
		},
		Leaderboard: []LeaderboardEntry{
			{Name: "maya", XP: 1420},
			{Name: "kofi", XP: 1180},
			{Name: "deni", XP: 960},
			{Name: "ana", XP: 610},
			{Name: "lee", XP: 280},
		},
		Quotes: []string{
			"Clear is better than clever.",
			"Don't communicate by sharing memory, share memory by communicating.",
			"A little copying is better than a little dependency.",
			"Errors are values.",
			"The bigger the interface, the weaker the abstraction.",
		},
	}
}
