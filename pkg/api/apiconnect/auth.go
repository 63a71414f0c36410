package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketpos/pkg/api"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "pos.v1.AuthService"

// These constants are the fully-qualified names of the RPCs defined in this package. They're
// exposed at runtime as Spec.Procedure and as the final two segments of the HTTP route.
const (
	AuthServiceLoginProcedure      = "/pos.v1.AuthService/Login"
	AuthServiceListRolesProcedure  = "/pos.v1.AuthService/ListRoles"
	AuthServiceListUsersProcedure  = "/pos.v1.AuthService/ListUsers"
	AuthServiceSaveUserProcedure   = "/pos.v1.AuthService/SaveUser"
	AuthServiceDeleteUserProcedure = "/pos.v1.AuthService/DeleteUser"
)

// AuthServiceHandler handles staff login and account management.
type AuthServiceHandler interface {
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	ListRoles(context.Context, *connect.Request[api.ListRolesRequest]) (*connect.Response[api.ListRolesResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	SaveUser(context.Context, *connect.Request[api.SaveUserRequest]) (*connect.Response[api.SaveUserResponse], error)
	DeleteUser(context.Context, *connect.Request[api.DeleteUserRequest]) (*connect.Response[api.DeleteUserResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithCodec()}, opts...)
	loginHandler := connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...)
	listRolesHandler := connect.NewUnaryHandler(AuthServiceListRolesProcedure, svc.ListRoles, opts...)
	listUsersHandler := connect.NewUnaryHandler(AuthServiceListUsersProcedure, svc.ListUsers, opts...)
	saveUserHandler := connect.NewUnaryHandler(AuthServiceSaveUserProcedure, svc.SaveUser, opts...)
	deleteUserHandler := connect.NewUnaryHandler(AuthServiceDeleteUserProcedure, svc.DeleteUser, opts...)
	return "/" + AuthServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceLoginProcedure:
			loginHandler.ServeHTTP(w, r)
		case AuthServiceListRolesProcedure:
			listRolesHandler.ServeHTTP(w, r)
		case AuthServiceListUsersProcedure:
			listUsersHandler.ServeHTTP(w, r)
		case AuthServiceSaveUserProcedure:
			saveUserHandler.ServeHTTP(w, r)
		case AuthServiceDeleteUserProcedure:
			deleteUserHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// AuthServiceClient is a client for the pos.v1.AuthService service.
type AuthServiceClient interface {
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	ListRoles(context.Context, *connect.Request[api.ListRolesRequest]) (*connect.Response[api.ListRolesResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	SaveUser(context.Context, *connect.Request[api.SaveUserRequest]) (*connect.Response[api.SaveUserResponse], error)
	DeleteUser(context.Context, *connect.Request[api.DeleteUserRequest]) (*connect.Response[api.DeleteUserResponse], error)
}

// NewAuthServiceClient constructs a client for the pos.v1.AuthService service.
// baseURL is the scheme, host and optional path prefix of the server, e.g. http://localhost:8080.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{api.WithCodec()}, opts...)
	return &authServiceClient{
		login: connect.NewClient[api.LoginRequest, api.LoginResponse](
			httpClient,
			baseURL+AuthServiceLoginProcedure,
			opts...,
		),
		listRoles: connect.NewClient[api.ListRolesRequest, api.ListRolesResponse](
			httpClient,
			baseURL+AuthServiceListRolesProcedure,
			opts...,
		),
		listUsers: connect.NewClient[api.ListUsersRequest, api.ListUsersResponse](
			httpClient,
			baseURL+AuthServiceListUsersProcedure,
			opts...,
		),
		saveUser: connect.NewClient[api.SaveUserRequest, api.SaveUserResponse](
			httpClient,
			baseURL+AuthServiceSaveUserProcedure,
			opts...,
		),
		deleteUser: connect.NewClient[api.DeleteUserRequest, api.DeleteUserResponse](
			httpClient,
			baseURL+AuthServiceDeleteUserProcedure,
			opts...,
		),
	}
}

type authServiceClient struct {
	login      *connect.Client[api.LoginRequest, api.LoginResponse]
	listRoles  *connect.Client[api.ListRolesRequest, api.ListRolesResponse]
	listUsers  *connect.Client[api.ListUsersRequest, api.ListUsersResponse]
	saveUser   *connect.Client[api.SaveUserRequest, api.SaveUserResponse]
	deleteUser *connect.Client[api.DeleteUserRequest, api.DeleteUserResponse]
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) ListRoles(ctx context.Context, req *connect.Request[api.ListRolesRequest]) (*connect.Response[api.ListRolesResponse], error) {
	return c.listRoles.CallUnary(ctx, req)
}

func (c *authServiceClient) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

func (c *authServiceClient) SaveUser(ctx context.Context, req *connect.Request[api.SaveUserRequest]) (*connect.Response[api.SaveUserResponse], error) {
	return c.saveUser.CallUnary(ctx, req)
}

func (c *authServiceClient) DeleteUser(ctx context.Context, req *connect.Request[api.DeleteUserRequest]) (*connect.Response[api.DeleteUserResponse], error) {
	return c.deleteUser.CallUnary(ctx, req)
}
