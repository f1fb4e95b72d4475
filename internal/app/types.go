package app

// Documents stored beside the learner state. Identity is cosmetic: one local
// user, no credentials.
type UserDoc struct {
	Name     string `json:"name"`
	JoinedAt string `json:"joinedAt"`
}

type ProfileDoc struct {
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
}

type ThemeDoc struct {
	Variant string `json:"variant"`
}
