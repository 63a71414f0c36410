package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/bucketpos/pkg/api"
)

func TestSettingsService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	got, err := c.settings.GetSettings(ctx, connect.NewRequest(&api.GetSettingsRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "de", got.Msg.Settings.Language)
	assert.Equal(t, "EUR", got.Msg.Settings.Currency)
	assert.True(t, got.Msg.Settings.AutoUpdates)

	want := &api.Settings{DBLocation: "/srv/pos.db", Language: "en", Currency: "GBP", EnableBackups: true}
	updated, err := c.settings.UpdateSettings(ctx, connect.NewRequest(&api.UpdateSettingsRequest{Settings: want}))
	require.NoError(t, err)
	assert.Equal(t, want, updated.Msg.Settings)

	got, err = c.settings.GetSettings(ctx, connect.NewRequest(&api.GetSettingsRequest{}))
	require.NoError(t, err)
	assert.Equal(t, want, got.Msg.Settings)

	_, err = c.settings.UpdateSettings(ctx, connect.NewRequest(&api.UpdateSettingsRequest{Settings: &api.Settings{Currency: "EUR"}}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = c.settings.UpdateSettings(ctx, connect.NewRequest(&api.UpdateSettingsRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)
}
