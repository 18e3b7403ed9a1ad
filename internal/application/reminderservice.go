package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/GoshPosh/slack-pull-reminder/internal/domain/model"
	"github.com/GoshPosh/slack-pull-reminder/internal/domain/port/driven"
)

// ReminderService collects open pull requests across an organization and
// delivers the rendered reminder.
type ReminderService struct {
	ghClient     driven.GitHubClient
	notifier     driven.ChatNotifier
	organization string
	filters      Filters
}

// NewReminderService creates a new ReminderService. notifier may be nil, in
// which case the reminder is only written to the output.
func NewReminderService(
	ghClient driven.GitHubClient,
	notifier driven.ChatNotifier,
	organization string,
	filters Filters,
) *ReminderService {
	return &ReminderService{
		ghClient:     ghClient,
		notifier:     notifier,
		organization: organization,
		filters:      filters,
	}
}

// Collect walks every repository of the organization and returns the
// rendered blocks in repository order. The first GitHub error aborts the
// walk and nothing collected so far is returned.
func (s *ReminderService) Collect(ctx context.Context) ([]string, error) {
	start := time.Now()

	org, err := s.ghClient.FetchOrganization(ctx, s.organization)
	if err != nil {
		return nil, err
	}

	repos, err := s.ghClient.ListRepositories(ctx, s.organization)
	if err != nil {
		return nil, err
	}

	var lines []string
	scanned := 0
	for _, repo := range repos {
		if !repositoryAllowed(repo.Name, s.filters.Repositories) {
			slog.Debug("repository skipped", "repo", repo.FullName)
			continue
		}
		scanned++

		repoLines, err := s.collectRepo(ctx, repo)
		if err != nil {
			return nil, err
		}
		lines = append(lines, repoLines...)
	}

	slog.Info("organization scanned",
		"org", org.Login,
		"org_id", org.ID,
		"repos", len(repos),
		"scanned", scanned,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return lines, nil
}

// collectRepo fetches, filters and formats a single repository. Reviews are
// fetched only for pull requests whose title passes the ignore-list.
func (s *ReminderService) collectRepo(ctx context.Context, repo model.Repository) ([]string, error) {
	fetched, err := s.ghClient.FetchPullRequests(ctx, repo.FullName, string(model.PRStatusOpen))
	if err != nil {
		return nil, err
	}

	prs := FilterPullRequests(fetched, s.filters.Usernames)
	if len(prs) == 0 {
		return nil, nil
	}

	for i := range prs {
		if !IsValidTitle(prs[i].Title, s.filters.IgnoreWords) {
			continue
		}
		reviews, err := s.ghClient.FetchReviews(ctx, repo.FullName, prs[i].Number)
		if err != nil {
			return nil, err
		}
		prs[i].Reviews = reviews
	}

	slog.Debug("repository collected", "repo", repo.FullName, "open_prs", len(prs))

	return FormatPullRequests(prs, s.organization, repo.Name, s.filters.IgnoreWords), nil
}

// Run collects the reminder, writes it to w and, when a notifier is
// configured, posts it. Nothing is written or posted when no repository has
// open pull requests. A message the chat service rejects is returned as an
// error carrying the service's description.
func (s *ReminderService) Run(ctx context.Context, w io.Writer) error {
	lines, err := s.Collect(ctx)
	if err != nil {
		return err
	}

	text, ok := ComposeMessage(lines)
	if !ok {
		slog.Info("no open pull requests")
		return nil
	}

	if _, err := fmt.Fprintln(w, text); err != nil {
		return fmt.Errorf("writing reminder: %w", err)
	}

	if s.notifier == nil {
		return nil
	}

	result, err := s.notifier.Post(ctx, text)
	if err != nil {
		return err
	}
	if err := result.Err(); err != nil {
		return err
	}

	slog.Info("reminder posted to slack")
	return nil
}
