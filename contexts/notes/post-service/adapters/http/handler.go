package httpadapter

import (
	"context"
	"log/slog"

	application "noteboard/contexts/notes/post-service/application"
	"noteboard/contexts/notes/post-service/domain/entities"
	"noteboard/contexts/notes/post-service/ports"
	httptransport "noteboard/contexts/notes/post-service/transport/http"
)

// Handler maps HTTP DTOs to post application operations.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListPostsHandler(ctx context.Context) ([]httptransport.PostDTO, error) {
	posts, err := h.Service.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.PostDTO, 0, len(posts))
	for _, post := range posts {
		items = append(items, toPostDTO(post))
	}
	return items, nil
}

func (h Handler) GetPostHandler(ctx context.Context, id int64) (httptransport.PostDTO, error) {
	post, err := h.Service.GetPost(ctx, id)
	if err != nil {
		return httptransport.PostDTO{}, err
	}
	return toPostDTO(post), nil
}

func (h Handler) CreatePostHandler(ctx context.Context, actor ports.Actor, request httptransport.PostPayload) (httptransport.PostDTO, error) {
	post, err := h.Service.CreatePost(ctx, actor, request.Title, request.Content, request.UserID)
	if err != nil {
		application.ResolveLogger(h.Logger).Warn("http post create failed",
			"event", "post_http_create_failed",
			"module", "notes/post-service",
			"layer", "transport",
			"actor_id", actor.UserID,
			"error", err.Error(),
		)
		return httptransport.PostDTO{}, err
	}
	return toPostDTO(post), nil
}

func (h Handler) UpdatePostHandler(ctx context.Context, actor ports.Actor, id int64, request httptransport.PostPayload) (httptransport.PostDTO, error) {
	post, err := h.Service.UpdatePost(ctx, actor, id, request.Title, request.Content, request.UserID)
	if err != nil {
		return httptransport.PostDTO{}, err
	}
	return toPostDTO(post), nil
}

func (h Handler) DeletePostHandler(ctx context.Context, actor ports.Actor, id int64) error {
	return h.Service.DeletePost(ctx, actor, id)
}

func toPostDTO(post entities.Post) httptransport.PostDTO {
	return httptransport.PostDTO{
		ID:       post.ID,
		Title:    post.Title,
		Content:  post.Content,
		UserID:   post.UserID,
		AuthorID: post.AuthorID,
	}
}
