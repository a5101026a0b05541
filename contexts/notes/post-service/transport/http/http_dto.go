package httptransport

// PostPayload is the body of POST /posts and PUT /posts/{id}. userId is a
// free-form tag chosen by the caller; authorId is never accepted from input.
type PostPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  int64  `json:"userId"`
}

// PostDTO is the external shape of a post.
type PostDTO struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	UserID   int64  `json:"userId"`
	AuthorID int64  `json:"authorId"`
}
