// Package github implements the GitHubClient port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"

	"github.com/GoshPosh/slack-pull-reminder/internal/adapter/driven/httplog"
	"github.com/GoshPosh/slack-pull-reminder/internal/domain/model"
	"github.com/GoshPosh/slack-pull-reminder/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

// perPage is the page size requested from every list endpoint.
const perPage = 100

// Client implements the driven.GitHubClient port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a GitHub API client authenticated with a personal access
// token. Requests go through httplog.Transport. A non-empty baseURL points the
// client at a GitHub Enterprise instance (e.g. https://ghe.example.com/api/v3/).
func NewClient(token, baseURL string) (*Client, error) {
	client := gh.NewClient(httplog.NewClient(30 * time.Second)).WithAuthToken(token)

	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("configuring github enterprise url %q: %w", baseURL, err)
		}
	}

	return &Client{gh: client}, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// FetchOrganization resolves an organization by login.
func (c *Client) FetchOrganization(ctx context.Context, org string) (*model.Organization, error) {
	o, resp, err := c.gh.Organizations.Get(ctx, org)
	if err != nil {
		return nil, fmt.Errorf("fetching organization %s: %w", org, err)
	}

	logRateLimit(resp, "orgs/"+org, 0, 1)

	return &model.Organization{
		ID:    o.GetID(),
		Login: o.GetLogin(),
	}, nil
}

// ListRepositories returns every repository of the organization in API order.
// It handles pagination automatically.
func (c *Client) ListRepositories(ctx context.Context, org string) ([]model.Repository, error) {
	opts := &gh.RepositoryListByOrgOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	allRepos := []model.Repository{}

	for {
		repos, resp, err := c.gh.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, fmt.Errorf("listing repositories for %s (page %d): %w", org, opts.Page, err)
		}

		logRateLimit(resp, "orgs/"+org+"/repos", opts.Page, len(repos))

		for _, r := range repos {
			allRepos = append(allRepos, mapRepository(r))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

// FetchPullRequests retrieves pull requests for the given repository filtered by state.
// Valid state values are "open", "closed", or "all" (as accepted by the GitHub API).
// It handles pagination automatically and keeps the API's default ordering.
func (c *Client) FetchPullRequests(ctx context.Context, repoFullName string, state string) ([]model.PullRequest, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.PullRequestListOptions{
		State:       state,
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	allPRs := []model.PullRequest{}

	for {
		prs, resp, err := c.gh.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing pull requests for %s (page %d): %w", repoFullName, opts.Page, err)
		}

		logRateLimit(resp, repoFullName+"/pulls", opts.Page, len(prs))

		for _, pr := range prs {
			allPRs = append(allPRs, mapPullRequest(pr, repoFullName))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allPRs, nil
}

// FetchReviews retrieves all reviews for a pull request in submission order.
// It handles pagination automatically.
func (c *Client) FetchReviews(ctx context.Context, repoFullName string, prNumber int) ([]model.Review, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.ListOptions{PerPage: perPage}
	allReviews := []model.Review{}

	for {
		reviews, resp, err := c.gh.PullRequests.ListReviews(ctx, owner, repo, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("listing reviews for %s#%d (page %d): %w", repoFullName, prNumber, opts.Page, err)
		}

		logRateLimit(resp, fmt.Sprintf("%s/pulls/%d/reviews", repoFullName, prNumber), opts.Page, len(reviews))

		for _, r := range reviews {
			allReviews = append(allReviews, mapReview(r))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allReviews, nil
}

// mapRepository converts a go-github Repository to a domain model Repository.
func mapRepository(r *gh.Repository) model.Repository {
	return model.Repository{
		FullName: r.GetFullName(),
		Name:     r.GetName(),
	}
}

// mapPullRequest converts a go-github PullRequest to a domain model PullRequest.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapPullRequest(pr *gh.PullRequest, repoFullName string) model.PullRequest {
	status := model.PRStatusOpen
	if pr.GetState() != "open" {
		status = model.PRStatusClosed
	}

	return model.PullRequest{
		Number:       pr.GetNumber(),
		RepoFullName: repoFullName,
		Title:        pr.GetTitle(),
		Author:       pr.GetUser().GetLogin(),
		Status:       status,
		URL:          pr.GetHTMLURL(),
	}
}

// mapReview converts a go-github PullRequestReview to a domain model Review.
// The state is kept verbatim; approval matching is exact.
func mapReview(r *gh.PullRequestReview) model.Review {
	return model.Review{
		ReviewerLogin: r.GetUser().GetLogin(),
		State:         model.ReviewState(r.GetState()),
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// splitRepo splits a "owner/repo" string into its two components.
func splitRepo(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo name %q: expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}
