package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketpos/internal/auth"
	"github.com/mmynk/bucketpos/internal/storage"
	"github.com/mmynk/bucketpos/pkg/api"
)

// AuthService implements the AuthService RPC interface: login and staff
// account management.
type AuthService struct {
	authenticator auth.Authenticator
	hasher        auth.Hasher
	jwtManager    *auth.JWTManager
	users         storage.UserStore
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, hasher auth.Hasher, jwtManager *auth.JWTManager, users storage.UserStore, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		hasher:        hasher,
		jwtManager:    jwtManager,
		users:         users,
		logger:        logger,
	}
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "username", req.Msg.Username)

	if req.Msg.Username == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "username", req.Msg.Username, "error", err)
		switch {
		case errors.Is(err, auth.ErrUserDisabled):
			return nil, connect.NewError(connect.CodePermissionDenied, err)
		case errors.Is(err, auth.ErrInvalidCredentials):
			return nil, connect.NewError(connect.CodeUnauthenticated, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "username", user.Username)
	return connect.NewResponse(&api.LoginResponse{User: userToAPI(user), Token: token}), nil
}

func (s *AuthService) ListRoles(ctx context.Context, req *connect.Request[api.ListRolesRequest]) (*connect.Response[api.ListRolesResponse], error) {
	roles, err := s.users.ListRoles(ctx)
	if err != nil {
		s.logger.Error("ListRoles failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListRolesResponse{Roles: convertAll(roles, roleToAPI)}), nil
}

func (s *AuthService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error("ListUsers failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListUsersResponse{Users: convertAll(users, userToAPI)}), nil
}

// SaveUser creates or updates a staff account. A non-empty password is
// validated and hashed; an empty one keeps the stored hash on update.
func (s *AuthService) SaveUser(ctx context.Context, req *connect.Request[api.SaveUserRequest]) (*connect.Response[api.SaveUserResponse], error) {
	if req.Msg.User == nil {
		return nil, required("user")
	}
	u := req.Msg.User
	s.logger.Info("SaveUser request", "user_id", u.ID, "username", u.Username)

	var hash string
	if req.Msg.Password != "" {
		if err := s.authenticator.ValidateCredential(req.Msg.Password); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		var err error
		if hash, err = s.hasher.Hash(req.Msg.Password); err != nil {
			s.logger.Error("Failed to hash password", "username", u.Username, "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	}

	id, err := s.users.SaveUser(ctx, userFromAPI(u, hash))
	if err != nil {
		s.logger.Error("SaveUser failed", "username", u.Username, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.SaveUserResponse{ID: id}), nil
}

func (s *AuthService) DeleteUser(ctx context.Context, req *connect.Request[api.DeleteUserRequest]) (*connect.Response[api.DeleteUserResponse], error) {
	s.logger.Info("DeleteUser request", "user_id", req.Msg.UserID)

	if err := s.users.DeleteUser(ctx, req.Msg.UserID); err != nil {
		s.logger.Error("DeleteUser failed", "user_id", req.Msg.UserID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteUserResponse{}), nil
}
