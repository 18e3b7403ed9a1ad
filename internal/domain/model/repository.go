package model

// Repository represents a GitHub repository belonging to the organization.
type Repository struct {
	FullName string
	Name     string
}

// Organization is the GitHub organization whose repositories are scanned.
type Organization struct {
	ID    int64
	Login string
}
