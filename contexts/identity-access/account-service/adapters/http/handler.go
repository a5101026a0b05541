package httpadapter

import (
	"context"
	"log/slog"

	application "noteboard/contexts/identity-access/account-service/application"
	"noteboard/contexts/identity-access/account-service/domain/entities"
	httptransport "noteboard/contexts/identity-access/account-service/transport/http"
)

// Handler maps HTTP DTOs to account application operations.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// RegisterHandler creates an account and returns its profile.
func (h Handler) RegisterHandler(ctx context.Context, request httptransport.RegisterRequest) (httptransport.UserDTO, error) {
	profile, err := h.Service.Register(ctx, request.Name, request.Email, request.Password, request.Role)
	if err != nil {
		application.ResolveLogger(h.Logger).Warn("http register failed",
			"event", "account_http_register_failed",
			"module", "identity-access/account-service",
			"layer", "transport",
			"email", request.Email,
			"error", err.Error(),
		)
		return httptransport.UserDTO{}, err
	}
	return toUserDTO(profile), nil
}

// LoginHandler authenticates credentials and returns profile plus token.
func (h Handler) LoginHandler(ctx context.Context, request httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	result, err := h.Service.Login(ctx, request.Email, request.Password)
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return httptransport.LoginResponse{
		User:  toUserDTO(result.User),
		Token: result.Token,
	}, nil
}

// MeHandler returns the authenticated caller's profile.
func (h Handler) MeHandler(ctx context.Context, userID int64) (httptransport.UserDTO, error) {
	profile, err := h.Service.Me(ctx, userID)
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	return toUserDTO(profile), nil
}

// ListUsersHandler returns all profiles; the admin gate sits at the router.
func (h Handler) ListUsersHandler(ctx context.Context) ([]httptransport.UserDTO, error) {
	profiles, err := h.Service.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.UserDTO, 0, len(profiles))
	for _, profile := range profiles {
		items = append(items, toUserDTO(profile))
	}
	return items, nil
}

func toUserDTO(profile entities.Profile) httptransport.UserDTO {
	return httptransport.UserDTO{
		ID:    profile.ID,
		Name:  profile.Name,
		Email: profile.Email,
		Role:  profile.Role,
	}
}
