package model

// AuthorGroups maps author logins to rendered lines, remembering the order in
// which authors were first seen.
type AuthorGroups struct {
	order []string
	lines map[string][]string
}

// NewAuthorGroups returns an empty AuthorGroups.
func NewAuthorGroups() *AuthorGroups {
	return &AuthorGroups{lines: make(map[string][]string)}
}

// Add appends line to author's bucket.
func (g *AuthorGroups) Add(author, line string) {
	if _, ok := g.lines[author]; !ok {
		g.order = append(g.order, author)
	}
	g.lines[author] = append(g.lines[author], line)
}

// Authors returns author logins in first-seen order.
func (g *AuthorGroups) Authors() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Lines returns the lines recorded for author.
func (g *AuthorGroups) Lines(author string) []string {
	return g.lines[author]
}
