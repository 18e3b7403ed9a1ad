package application_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoshPosh/slack-pull-reminder/internal/application"
	"github.com/GoshPosh/slack-pull-reminder/internal/domain/model"
)

// --- Mock implementations ---

type mockGitHubClient struct {
	repos       []model.Repository
	prs         map[string][]model.PullRequest // keyed by repo full name
	reviews     map[int][]model.Review         // keyed by PR number
	orgErr      error
	reposErr    error
	prsErr      error
	reviewsErr  error
	prCalls     []string
	reviewCalls []int
}

func (m *mockGitHubClient) FetchOrganization(_ context.Context, org string) (*model.Organization, error) {
	if m.orgErr != nil {
		return nil, m.orgErr
	}
	return &model.Organization{ID: 1, Login: org}, nil
}

func (m *mockGitHubClient) ListRepositories(_ context.Context, _ string) ([]model.Repository, error) {
	return m.repos, m.reposErr
}

func (m *mockGitHubClient) FetchPullRequests(_ context.Context, repoFullName string, state string) ([]model.PullRequest, error) {
	m.prCalls = append(m.prCalls, repoFullName+":"+state)
	if m.prsErr != nil {
		return nil, m.prsErr
	}
	return m.prs[repoFullName], nil
}

func (m *mockGitHubClient) FetchReviews(_ context.Context, _ string, prNumber int) ([]model.Review, error) {
	m.reviewCalls = append(m.reviewCalls, prNumber)
	if m.reviewsErr != nil {
		return nil, m.reviewsErr
	}
	return m.reviews[prNumber], nil
}

type mockNotifier struct {
	result model.DeliveryResult
	err    error
	posts  []string
}

func (m *mockNotifier) Post(_ context.Context, text string) (model.DeliveryResult, error) {
	m.posts = append(m.posts, text)
	return m.result, m.err
}

func repo(name string) model.Repository {
	return model.Repository{FullName: "acme/" + name, Name: name}
}

func pr(number int, repoName, author, title string) model.PullRequest {
	return model.PullRequest{
		Number:       number,
		RepoFullName: "acme/" + repoName,
		Title:        title,
		Author:       author,
		Status:       model.PRStatusOpen,
		URL:          "https://example.test/" + title,
	}
}

func approvals(logins ...string) []model.Review {
	out := make([]model.Review, 0, len(logins))
	for _, l := range logins {
		out = append(out, model.Review{ReviewerLogin: l, State: model.ReviewStateApproved})
	}
	return out
}

func TestCollect_RepositoryAllowList(t *testing.T) {
	gh := &mockGitHubClient{
		repos: []model.Repository{repo("repoA"), repo("repoB")},
		prs: map[string][]model.PullRequest{
			"acme/repoA": {pr(1, "repoA", "alice", "from-a")},
			"acme/repoB": {pr(2, "repoB", "alice", "from-b")},
		},
	}
	svc := application.NewReminderService(gh, nil, "acme", application.Filters{Repositories: []string{"repoa"}})

	lines, err := svc.Collect(context.Background())

	require.NoError(t, err)
	text := joinLines(lines)
	assert.Contains(t, text, "from-a")
	assert.NotContains(t, text, "from-b")
	assert.Equal(t, []string{"acme/repoA:open"}, gh.prCalls)
}

func TestCollect_UsernameAllowList(t *testing.T) {
	gh := &mockGitHubClient{
		repos: []model.Repository{repo("api")},
		prs: map[string][]model.PullRequest{
			"acme/api": {
				pr(1, "api", "alice", "alice-change"),
				pr(2, "api", "bob", "bob-change"),
			},
		},
	}
	svc := application.NewReminderService(gh, nil, "acme", application.Filters{Usernames: []string{"alice"}})

	lines, err := svc.Collect(context.Background())

	require.NoError(t, err)
	text := joinLines(lines)
	assert.Contains(t, text, "alice-change")
	assert.NotContains(t, text, "bob-change")
	assert.Equal(t, []int{1}, gh.reviewCalls, "reviews are only fetched for allowed authors")
}

func TestCollect_SkipsReviewsForIgnoredTitles(t *testing.T) {
	gh := &mockGitHubClient{
		repos: []model.Repository{repo("api")},
		prs: map[string][]model.PullRequest{
			"acme/api": {
				pr(1, "api", "alice", "WIP-thing"),
				pr(2, "api", "alice", "ready-thing"),
			},
		},
	}
	svc := application.NewReminderService(gh, nil, "acme", application.Filters{IgnoreWords: []string{"wip"}})

	lines, err := svc.Collect(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int{2}, gh.reviewCalls)
	assert.NotContains(t, joinLines(lines), "WIP-thing")
}

func TestCollect_ClassifiesByApprovals(t *testing.T) {
	gh := &mockGitHubClient{
		repos: []model.Repository{repo("api")},
		prs: map[string][]model.PullRequest{
			"acme/api": {
				pr(1, "api", "alice", "pending-one"),
				pr(2, "api", "alice", "approved-one"),
			},
		},
		reviews: map[int][]model.Review{
			1: approvals("carol"),
			2: approvals("carol", "dave", "erin"),
		},
	}
	svc := application.NewReminderService(gh, nil, "acme", application.Filters{})

	lines, err := svc.Collect(context.Background())

	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "pending-one")
	assert.NotContains(t, lines[0], "approved-one")
	assert.Equal(t, banner, lines[1])
	assert.Contains(t, lines[2], "<https://example.test/approved-one|approved-one> : APPROVED BY carol,dave ")
}

func TestCollect_ReposWithoutOpenPRsContributeNothing(t *testing.T) {
	gh := &mockGitHubClient{
		repos: []model.Repository{repo("api"), repo("web")},
		prs:   map[string][]model.PullRequest{},
	}
	svc := application.NewReminderService(gh, nil, "acme", application.Filters{})

	lines, err := svc.Collect(context.Background())

	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCollect_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		gh   *mockGitHubClient
	}{
		{name: "organization", gh: &mockGitHubClient{orgErr: boom}},
		{name: "repositories", gh: &mockGitHubClient{reposErr: boom}},
		{name: "pull requests", gh: &mockGitHubClient{repos: []model.Repository{repo("api")}, prsErr: boom}},
		{
			name: "reviews",
			gh: &mockGitHubClient{
				repos:      []model.Repository{repo("api")},
				prs:        map[string][]model.PullRequest{"acme/api": {pr(1, "api", "alice", "x")}},
				reviewsErr: boom,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := application.NewReminderService(tt.gh, nil, "acme", application.Filters{})

			lines, err := svc.Collect(context.Background())

			assert.Nil(t, lines)
			require.ErrorIs(t, err, boom)
		})
	}
}

func TestCollect_ErrorDiscardsEarlierRepositories(t *testing.T) {
	gh := &mockGitHubClient{
		repos: []model.Repository{repo("api"), repo("web")},
		prs: map[string][]model.PullRequest{
			"acme/api": {pr(1, "api", "alice", "first")},
			"acme/web": {pr(2, "web", "alice", "second")},
		},
		reviews: map[int][]model.Review{},
	}
	failing := &failingSecondRepo{mockGitHubClient: gh}
	svc := application.NewReminderService(failing, nil, "acme", application.Filters{})

	lines, err := svc.Collect(context.Background())

	require.Error(t, err)
	assert.Nil(t, lines)
}

// failingSecondRepo fails when listing pull requests of acme/web.
type failingSecondRepo struct {
	*mockGitHubClient
}

func (f *failingSecondRepo) FetchPullRequests(ctx context.Context, repoFullName string, state string) ([]model.PullRequest, error) {
	if repoFullName == "acme/web" {
		return nil, errors.New("upstream unavailable")
	}
	return f.mockGitHubClient.FetchPullRequests(ctx, repoFullName, state)
}

func TestRun_NoPullRequestsProducesNoOutput(t *testing.T) {
	gh := &mockGitHubClient{repos: []model.Repository{repo("api")}}
	notifier := &mockNotifier{result: model.DeliveryResult{OK: true}}
	svc := application.NewReminderService(gh, notifier, "acme", application.Filters{})

	var out bytes.Buffer
	err := svc.Run(context.Background(), &out)

	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Empty(t, notifier.posts)
}

func TestRun_PrintsWithoutNotifier(t *testing.T) {
	gh := &mockGitHubClient{
		repos: []model.Repository{repo("api")},
		prs:   map[string][]model.PullRequest{"acme/api": {pr(1, "api", "alice", "change")}},
	}
	svc := application.NewReminderService(gh, nil, "acme", application.Filters{})

	var out bytes.Buffer
	err := svc.Run(context.Background(), &out)

	require.NoError(t, err)
	want := application.InitialMessage +
		">*AUTHOR* : *_alice_* :arrow_right: *Count : 1*\n*[acme/api]* <https://example.test/change|change> \n" +
		banner + "\n"
	assert.Equal(t, want, out.String())
}

func TestRun_PostsToNotifier(t *testing.T) {
	gh := &mockGitHubClient{
		repos: []model.Repository{repo("api")},
		prs:   map[string][]model.PullRequest{"acme/api": {pr(1, "api", "alice", "change")}},
	}
	notifier := &mockNotifier{result: model.DeliveryResult{OK: true}}
	svc := application.NewReminderService(gh, notifier, "acme", application.Filters{})

	var out bytes.Buffer
	err := svc.Run(context.Background(), &out)

	require.NoError(t, err)
	require.Len(t, notifier.posts, 1)
	assert.Equal(t, out.String(), notifier.posts[0]+"\n")
}

func TestRun_RejectedDeliveryIsError(t *testing.T) {
	gh := &mockGitHubClient{
		repos: []model.Repository{repo("api")},
		prs:   map[string][]model.PullRequest{"acme/api": {pr(1, "api", "alice", "change")}},
	}
	notifier := &mockNotifier{result: model.DeliveryResult{OK: false, Error: "channel_not_found"}}
	svc := application.NewReminderService(gh, notifier, "acme", application.Filters{})

	err := svc.Run(context.Background(), &bytes.Buffer{})

	require.EqualError(t, err, "channel_not_found")
}

func TestRun_NotifierTransportError(t *testing.T) {
	gh := &mockGitHubClient{
		repos: []model.Repository{repo("api")},
		prs:   map[string][]model.PullRequest{"acme/api": {pr(1, "api", "alice", "change")}},
	}
	notifier := &mockNotifier{err: errors.New("posting to slack: connection refused")}
	svc := application.NewReminderService(gh, notifier, "acme", application.Filters{})

	err := svc.Run(context.Background(), &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func joinLines(lines []string) string {
	var b bytes.Buffer
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}
