package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketpos/pkg/api"
)

// SettingsServiceName is the fully-qualified name of the SettingsService service.
const SettingsServiceName = "pos.v1.SettingsService"

// These constants are the fully-qualified names of the RPCs defined in this package. They're
// exposed at runtime as Spec.Procedure and as the final two segments of the HTTP route.
const (
	SettingsServiceGetSettingsProcedure    = "/pos.v1.SettingsService/GetSettings"
	SettingsServiceUpdateSettingsProcedure = "/pos.v1.SettingsService/UpdateSettings"
)

// SettingsServiceHandler reads and writes application settings.
type SettingsServiceHandler interface {
	GetSettings(context.Context, *connect.Request[api.GetSettingsRequest]) (*connect.Response[api.GetSettingsResponse], error)
	UpdateSettings(context.Context, *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.UpdateSettingsResponse], error)
}

// NewSettingsServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
func NewSettingsServiceHandler(svc SettingsServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithCodec()}, opts...)
	getSettingsHandler := connect.NewUnaryHandler(SettingsServiceGetSettingsProcedure, svc.GetSettings, opts...)
	updateSettingsHandler := connect.NewUnaryHandler(SettingsServiceUpdateSettingsProcedure, svc.UpdateSettings, opts...)
	return "/" + SettingsServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SettingsServiceGetSettingsProcedure:
			getSettingsHandler.ServeHTTP(w, r)
		case SettingsServiceUpdateSettingsProcedure:
			updateSettingsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// SettingsServiceClient is a client for the pos.v1.SettingsService service.
type SettingsServiceClient interface {
	GetSettings(context.Context, *connect.Request[api.GetSettingsRequest]) (*connect.Response[api.GetSettingsResponse], error)
	UpdateSettings(context.Context, *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.UpdateSettingsResponse], error)
}

// NewSettingsServiceClient constructs a client for the pos.v1.SettingsService service.
// baseURL is the scheme, host and optional path prefix of the server, e.g. http://localhost:8080.
func NewSettingsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettingsServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{api.WithCodec()}, opts...)
	return &settingsServiceClient{
		getSettings: connect.NewClient[api.GetSettingsRequest, api.GetSettingsResponse](
			httpClient,
			baseURL+SettingsServiceGetSettingsProcedure,
			opts...,
		),
		updateSettings: connect.NewClient[api.UpdateSettingsRequest, api.UpdateSettingsResponse](
			httpClient,
			baseURL+SettingsServiceUpdateSettingsProcedure,
			opts...,
		),
	}
}

type settingsServiceClient struct {
	getSettings    *connect.Client[api.GetSettingsRequest, api.GetSettingsResponse]
	updateSettings *connect.Client[api.UpdateSettingsRequest, api.UpdateSettingsResponse]
}

func (c *settingsServiceClient) GetSettings(ctx context.Context, req *connect.Request[api.GetSettingsRequest]) (*connect.Response[api.GetSettingsResponse], error) {
	return c.getSettings.CallUnary(ctx, req)
}

func (c *settingsServiceClient) UpdateSettings(ctx context.Context, req *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.UpdateSettingsResponse], error) {
	return c.updateSettings.CallUnary(ctx, req)
}
