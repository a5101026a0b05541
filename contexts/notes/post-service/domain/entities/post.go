package entities

// Post is a shared note. UserID is a caller-supplied numeric tag and is
// deliberately not validated against the user store. AuthorID is set
// server-side at creation from the authenticated identity and never changes.
type Post struct {
	ID       int64
	Title    string
	Content  string
	UserID   int64
	AuthorID int64
}
