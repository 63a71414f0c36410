package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketpos/internal/settings"
	"github.com/mmynk/bucketpos/pkg/api"
)

// SettingsService implements the Connect SettingsService.
type SettingsService struct {
	manager *settings.Manager
}

func NewSettingsService(manager *settings.Manager) *SettingsService {
	return &SettingsService{manager: manager}
}

func (s *SettingsService) GetSettings(ctx context.Context, req *connect.Request[api.GetSettingsRequest]) (*connect.Response[api.GetSettingsResponse], error) {
	return connect.NewResponse(&api.GetSettingsResponse{Settings: settingsToAPI(s.manager.Get())}), nil
}

// UpdateSettings persists the full settings value and returns what is now in effect.
func (s *SettingsService) UpdateSettings(ctx context.Context, req *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.UpdateSettingsResponse], error) {
	if req.Msg.Settings == nil {
		return nil, required("settings")
	}
	slog.Info("UpdateSettings request received",
		"language", req.Msg.Settings.Language,
		"currency", req.Msg.Settings.Currency,
	)

	if err := s.manager.Save(settingsFromAPI(req.Msg.Settings)); err != nil {
		slog.Error("UpdateSettings failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.UpdateSettingsResponse{Settings: settingsToAPI(s.manager.Get())}), nil
}

func settingsToAPI(s settings.Settings) *api.Settings {
	return &api.Settings{
		DBLocation:    s.DBLocation,
		Language:      s.Language,
		Currency:      s.Currency,
		AutoUpdates:   s.AutoUpdates,
		EnableBackups: s.EnableBackups,
	}
}

func settingsFromAPI(s *api.Settings) settings.Settings {
	return settings.Settings{
		DBLocation:    s.DBLocation,
		Language:      s.Language,
		Currency:      s.Currency,
		AutoUpdates:   s.AutoUpdates,
		EnableBackups: s.EnableBackups,
	}
}
