// Package driven declares the ports the application uses to reach external
// systems.
package driven

import (
	"context"

	"github.com/GoshPosh/slack-pull-reminder/internal/domain/model"
)

// GitHubClient defines the driven port for reading from the GitHub API.
// Every method returns results in the order GitHub returned them.
type GitHubClient interface {
	// FetchOrganization resolves an organization by login.
	FetchOrganization(ctx context.Context, org string) (*model.Organization, error)
	// ListRepositories returns the repositories belonging to org.
	ListRepositories(ctx context.Context, org string) ([]model.Repository, error)
	// FetchPullRequests returns pull requests for the given repository filtered by state.
	FetchPullRequests(ctx context.Context, repoFullName string, state string) ([]model.PullRequest, error)
	// FetchReviews returns the reviews submitted on a pull request.
	FetchReviews(ctx context.Context, repoFullName string, prNumber int) ([]model.Review, error)
}
