package domain

import "time"

// Blog is an article with a cover image written by a user.
type Blog struct {
	ID           string
	Title        string
	Description  string
	Image        string // stored relative path
	UploadedDate time.Time
	AuthorID     string
	// Author is resolved on single-record reads and nil otherwise.
	Author *Author
}

// Author is the public projection of the user who wrote a blog.
type Author struct {
	ID          string
	Name        string
	Designation string
}

// BlogPatch holds the fields supplied to a blog update.
type BlogPatch struct {
	Title       *string
	Description *string
}

// BlogRepository lists blogs newest first by UploadedDate.
type BlogRepository = Repository[Blog]
