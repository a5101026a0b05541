package application

import (
	"context"
	"log/slog"
	"strings"

	"noteboard/contexts/notes/post-service/domain/entities"
	domainerrors "noteboard/contexts/notes/post-service/domain/errors"
	"noteboard/contexts/notes/post-service/ports"
)

// Service gates every post mutation with the ordered check pipeline:
// authenticate (done at the transport edge, producing the Actor) -> role
// check (create only) -> resolve target -> ownership check -> apply.
// A missing target must fail before the ownership check so absent and
// present-but-forbidden posts answer 404 and 403 consistently.
type Service struct {
	Posts  ports.PostRepository
	Logger *slog.Logger
}

// ListPosts returns every post in insertion order. Reads are public.
func (s Service) ListPosts(ctx context.Context) ([]entities.Post, error) {
	return s.Posts.ListAll(ctx)
}

// GetPost returns a single post. Reads are public.
func (s Service) GetPost(ctx context.Context, id int64) (entities.Post, error) {
	post, found, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return entities.Post{}, err
	}
	if !found {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	return post, nil
}

// CreatePost requires role user or admin. AuthorID is taken from the actor,
// never from the request body.
func (s Service) CreatePost(ctx context.Context, actor ports.Actor, title, content string, userID int64) (entities.Post, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" || userID == 0 {
		return entities.Post{}, domainerrors.ErrInvalidRequest
	}
	if actor.Role != ports.RoleUser && actor.Role != ports.RoleAdmin {
		ResolveLogger(s.Logger).Warn("post create denied by role gate",
			"event", "post_create_role_denied",
			"module", "notes/post-service",
			"layer", "application",
			"actor_id", actor.UserID,
			"role", actor.Role,
		)
		return entities.Post{}, domainerrors.ErrRoleForbidden
	}

	created, err := s.Posts.Create(ctx, entities.Post{
		Title:    title,
		Content:  content,
		UserID:   userID,
		AuthorID: actor.UserID,
	})
	if err != nil {
		return entities.Post{}, err
	}

	ResolveLogger(s.Logger).Info("post created",
		"event", "post_created",
		"module", "notes/post-service",
		"layer", "application",
		"post_id", created.ID,
		"author_id", created.AuthorID,
	)
	return created, nil
}

// UpdatePost replaces title/content/userId. The store is touched only after
// the target is resolved and the ownership gate has passed.
func (s Service) UpdatePost(ctx context.Context, actor ports.Actor, id int64, title, content string, userID int64) (entities.Post, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" || userID == 0 {
		return entities.Post{}, domainerrors.ErrInvalidRequest
	}

	target, found, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return entities.Post{}, err
	}
	if !found {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	if err := s.authorizeOwnership(actor, target); err != nil {
		return entities.Post{}, err
	}

	updated, found, err := s.Posts.Update(ctx, id, ports.PostUpdate{
		Title:   title,
		Content: content,
		UserID:  userID,
	})
	if err != nil {
		return entities.Post{}, err
	}
	if !found {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	return updated, nil
}

// DeletePost removes a post under the same gate order as UpdatePost.
func (s Service) DeletePost(ctx context.Context, actor ports.Actor, id int64) error {
	target, found, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrPostNotFound
	}
	if err := s.authorizeOwnership(actor, target); err != nil {
		return err
	}

	removed, err := s.Posts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domainerrors.ErrPostNotFound
	}

	ResolveLogger(s.Logger).Info("post deleted",
		"event", "post_deleted",
		"module", "notes/post-service",
		"layer", "application",
		"post_id", id,
		"actor_id", actor.UserID,
	)
	return nil
}

// authorizeOwnership grants mutation rights to admins unconditionally and to
// the post's author otherwise.
func (s Service) authorizeOwnership(actor ports.Actor, target entities.Post) error {
	if actor.Role == ports.RoleAdmin {
		return nil
	}
	if actor.UserID == target.AuthorID {
		return nil
	}
	ResolveLogger(s.Logger).Warn("post mutation denied by ownership gate",
		"event", "post_ownership_denied",
		"module", "notes/post-service",
		"layer", "application",
		"post_id", target.ID,
		"author_id", target.AuthorID,
		"actor_id", actor.UserID,
		"role", actor.Role,
	)
	return domainerrors.ErrNotOwner
}
