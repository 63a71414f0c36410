package api

type GetSettingsRequest struct{}

type GetSettingsResponse struct {
	Settings *Settings `json:"settings"`
}

type UpdateSettingsRequest struct {
	Settings *Settings `json:"settings"`
}

type UpdateSettingsResponse struct {
	Settings *Settings `json:"settings"`
}
