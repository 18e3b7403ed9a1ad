package model

// PullRequest represents a GitHub pull request considered for the reminder.
type PullRequest struct {
	Number       int
	RepoFullName string
	Title        string
	Author       string
	Status       PRStatus
	URL          string

	// Populated by the reminder service after the title filter; in the order
	// GitHub returned them.
	Reviews []Review
}

// IsOpen reports whether the pull request is still open.
func (pr PullRequest) IsOpen() bool {
	return pr.Status == PRStatusOpen
}
