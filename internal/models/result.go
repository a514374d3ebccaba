package models

// PostResult is the terminal summary of one publish attempt.
type PostResult struct {
	Success   bool   `json:"success"`
	DryRun    bool   `json:"dry_run,omitempty"`
	MediaID   string `json:"media_id,omitempty"`
	MediaCode string `json:"media_code,omitempty"`
	URL       string `json:"url,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Media identifies an uploaded post or story.
type Media struct {
	PK   string
	ID   string
	Code string
}

// Account is the subset of profile data reported by the login self-test.
type Account struct {
	PK             string
	Username       string
	FullName       string
	FollowerCount  int
	FollowingCount int
	MediaCount     int
}

// Credentials are the stored login details for the posting account.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
