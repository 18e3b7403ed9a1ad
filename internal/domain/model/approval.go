package model

// RequiredApprovals is the number of approving reviews that promotes a pull
// request from pending to approved.
const RequiredApprovals = 2

// ApprovalSummary is the result of walking a pull request's reviews.
type ApprovalSummary struct {
	Count     int
	Reviewers []string // Logins of the first approvers, in review order.
}

// IsApproved reports whether the threshold was reached.
func (s ApprovalSummary) IsApproved() bool {
	return s.Count >= RequiredApprovals
}

// SummarizeApprovals walks reviews in order and stops as soon as
// RequiredApprovals approving reviews have been seen. Later approvers are
// never recorded.
func SummarizeApprovals(reviews []Review) ApprovalSummary {
	summary := ApprovalSummary{Reviewers: []string{}}
	for _, r := range reviews {
		if summary.Count == RequiredApprovals {
			break
		}
		if r.IsApproval() {
			summary.Count++
			summary.Reviewers = append(summary.Reviewers, r.ReviewerLogin)
		}
	}
	return summary
}
