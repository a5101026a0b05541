package errors

import "errors"

var (
	ErrInvalidRequest = errors.New("title, content and userId are required")
	ErrPostNotFound   = errors.New("post not found")
	ErrRoleForbidden  = errors.New("insufficient role to create posts")
	ErrNotOwner       = errors.New("you can only modify your own posts")
)
