package model

// Review represents a review submitted on a pull request.
type Review struct {
	ReviewerLogin string
	State         ReviewState
}

// IsApproval reports whether the review approves the pull request.
func (r Review) IsApproval() bool {
	return r.State == ReviewStateApproved
}
