package application

import (
	"fmt"
	"strings"

	"github.com/GoshPosh/slack-pull-reminder/internal/domain/model"
)

// InitialMessage opens every reminder.
const InitialMessage = "Hi! There's a few open pull requests you should take a look at:\n\n"

// approvedBanner separates the pending section from the approved section.
const approvedBanner = "\n*#############################################################################################*" +
	"\n*############################ APPROVED PULL REQUESTS #########################################*" +
	"\n*#############################################################################################*\n"

// FormatPullRequests classifies one repository's pull requests into pending
// and approved groups and renders them as Slack mrkdwn blocks: one block per
// pending author, the approved banner, then one block per approved author.
// Pull requests whose title contains an ignored word are skipped. The
// banner is always emitted.
func FormatPullRequests(prs []model.PullRequest, owner, repository string, ignoreWords []string) []string {
	pending := model.NewAuthorGroups()
	approved := model.NewAuthorGroups()

	for _, pr := range prs {
		if !IsValidTitle(pr.Title, ignoreWords) {
			continue
		}

		summary := model.SummarizeApprovals(pr.Reviews)
		if summary.IsApproved() {
			approved.Add(pr.Author, fmt.Sprintf("*[%s/%s]* <%s|%s> : APPROVED BY %s ",
				owner, repository, pr.URL, pr.Title, strings.Join(summary.Reviewers, ",")))
			continue
		}
		pending.Add(pr.Author, fmt.Sprintf("*[%s/%s]* <%s|%s> ", owner, repository, pr.URL, pr.Title))
	}

	lines := renderGroups(nil, pending)
	lines = append(lines, approvedBanner)
	return renderGroups(lines, approved)
}

// renderGroups appends one block per author: a header with the author's
// login and line count followed by the author's lines.
func renderGroups(dst []string, groups *model.AuthorGroups) []string {
	for _, author := range groups.Authors() {
		authorLines := groups.Lines(author)
		header := fmt.Sprintf(">*AUTHOR* : *_%s_* :arrow_right: *Count : %d*\n", author, len(authorLines))
		dst = append(dst, header+strings.Join(authorLines, "\n"))
	}
	return dst
}

// ComposeMessage joins the collected blocks under InitialMessage. It returns
// false when there is nothing to send.
func ComposeMessage(lines []string) (string, bool) {
	if len(lines) == 0 {
		return "", false
	}
	return InitialMessage + strings.Join(lines, "\n"), true
}
