// Package application contains use-case orchestration services.
package application

import (
	"slices"
	"strings"

	"github.com/GoshPosh/slack-pull-reminder/internal/domain/model"
)

// Filters holds the lower-cased allow-lists and ignore-list resolved from
// configuration. An empty list disables that filter.
type Filters struct {
	IgnoreWords  []string
	Repositories []string
	Usernames    []string
}

// FilterPullRequests keeps open pull requests and, when an author allow-list
// is configured, only those whose author login is listed. Order is preserved.
func FilterPullRequests(prs []model.PullRequest, usernames []string) []model.PullRequest {
	out := []model.PullRequest{}
	for _, pr := range prs {
		if !pr.IsOpen() {
			continue
		}
		if len(usernames) > 0 && !slices.Contains(usernames, strings.ToLower(pr.Author)) {
			continue
		}
		out = append(out, pr)
	}
	return out
}

// IsValidTitle returns false if the title contains any ignored word,
// case-insensitively.
func IsValidTitle(title string, ignoreWords []string) bool {
	lower := strings.ToLower(title)
	for _, word := range ignoreWords {
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}

// repositoryAllowed reports whether name passes the repository allow-list.
func repositoryAllowed(name string, repositories []string) bool {
	return len(repositories) == 0 || slices.Contains(repositories, strings.ToLower(name))
}
