package post

import (
	"context"
	"log/slog"
	"time"

	httpadapter "noteboard/contexts/notes/post-service/adapters/http"
	"noteboard/contexts/notes/post-service/adapters/memory"
	"noteboard/contexts/notes/post-service/application"
	"noteboard/contexts/notes/post-service/domain/entities"
	"noteboard/contexts/notes/post-service/ports"
)

// Module is the post-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Cache   ports.ResponseCache
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Posts  ports.PostRepository
	Cache  ports.ResponseCache
	Logger *slog.Logger
}

// NewModule wires the post service and transport handler using explicit ports.
func NewModule(deps Dependencies) Module {
	cache := deps.Cache
	if cache == nil {
		cache = memory.NoopCache{}
	}
	service := application.Service{
		Posts:  deps.Posts,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Cache: cache,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters and the fixed two-post seed dataset.
func NewInMemoryModule(logger *slog.Logger, cacheEnabled bool, cacheTTL time.Duration) Module {
	store := memory.NewStore()
	seed(store)

	var cache ports.ResponseCache = memory.NoopCache{}
	if cacheEnabled {
		cache = memory.NewCache(cacheTTL)
	}

	module := NewModule(Dependencies{
		Posts:  store,
		Cache:  cache,
		Logger: logger,
	})
	module.Store = store
	return module
}

func seed(store *memory.Store) {
	seeds := []entities.Post{
		{Title: "First note", Content: "A sample note for trying out the API", UserID: 1, AuthorID: 1},
		{Title: "Second note", Content: "Another note in the system", UserID: 1, AuthorID: 2},
	}
	for _, item := range seeds {
		_, _ = store.Create(context.Background(), item)
	}
}
