package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	accountports "noteboard/contexts/identity-access/account-service/ports"
	posterrors "noteboard/contexts/notes/post-service/domain/errors"
	postports "noteboard/contexts/notes/post-service/ports"
	posttransport "noteboard/contexts/notes/post-service/transport/http"
)

const cacheKeyPrefix = "posts_cache_"

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	if s.serveCached(w, r) {
		return
	}

	posts, err := s.posts.Handler.ListPostsHandler(r.Context())
	if err != nil {
		s.writePostError(w, err)
		return
	}
	s.writeCacheable(w, r, envelope{Success: true, Data: posts})
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, posterrors.ErrPostNotFound.Error())
		return
	}

	if s.serveCached(w, r) {
		return
	}

	postDTO, err := s.posts.Handler.GetPostHandler(r.Context(), id)
	if err != nil {
		s.writePostError(w, err)
		return
	}
	s.writeCacheable(w, r, envelope{Success: true, Data: postDTO})
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		s.writePostError(w, err)
		return
	}

	var req posttransport.PostPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	created, err := s.posts.Handler.CreatePostHandler(r.Context(), toActor(identity), req)
	if err != nil {
		s.writePostError(w, err)
		return
	}
	s.invalidatePostsCache(r.Context())
	writeSuccess(w, http.StatusCreated, created)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		s.writePostError(w, err)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, posterrors.ErrPostNotFound.Error())
		return
	}

	var req posttransport.PostPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	updated, err := s.posts.Handler.UpdatePostHandler(r.Context(), toActor(identity), id, req)
	if err != nil {
		s.writePostError(w, err)
		return
	}
	s.invalidatePostsCache(r.Context())
	writeSuccess(w, http.StatusOK, updated)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		s.writePostError(w, err)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, posterrors.ErrPostNotFound.Error())
		return
	}

	if err := s.posts.Handler.DeletePostHandler(r.Context(), toActor(identity), id); err != nil {
		s.writePostError(w, err)
		return
	}
	s.invalidatePostsCache(r.Context())
	writeSuccessMessage(w, http.StatusOK, "post deleted successfully")
}

func toActor(identity accountports.Identity) postports.Actor {
	return postports.Actor{
		UserID: identity.UserID,
		Role:   identity.Role,
	}
}

// serveCached answers a read from the response cache. Cache failures are
// logged and treated as misses; the cache must never fail a request.
func (s *Server) serveCached(w http.ResponseWriter, r *http.Request) bool {
	key := cacheKeyPrefix + r.URL.Path
	payload, hit, err := s.posts.Cache.Get(r.Context(), key, time.Now().UTC())
	if err != nil {
		s.logger.Warn("cache lookup failed",
			"event", "posts_cache_get_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"key", key,
			"error", err.Error(),
		)
		return false
	}
	if !hit {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
	return true
}

// writeCacheable writes a successful read response and stores the exact
// bytes so a cache hit replays the envelope verbatim.
func (s *Server) writeCacheable(w http.ResponseWriter, r *http.Request, body envelope) {
	payload, err := json.Marshal(body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)

	key := cacheKeyPrefix + r.URL.Path
	if err := s.posts.Cache.Set(r.Context(), key, payload, time.Now().UTC()); err != nil {
		s.logger.Warn("cache store failed",
			"event", "posts_cache_set_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"key", key,
			"error", err.Error(),
		)
	}
}

func (s *Server) invalidatePostsCache(ctx context.Context) {
	if err := s.posts.Cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("cache invalidation failed",
			"event", "posts_cache_invalidate_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
	}
}
