package services

import (
	"testing"

	"printshop_backend/internal/models"
	"printshop_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepo struct {
	settings *models.CompanySettings
}

var _ repositories.SettingsRepository = (*fakeSettingsRepo)(nil)

func (f *fakeSettingsRepo) GetSettings() (*models.CompanySettings, error) {
	if f.settings == nil {
		return nil, repositories.ErrNotFound
	}
	copied := *f.settings
	return &copied, nil
}

func (f *fakeSettingsRepo) UpsertSettings(_ repositories.SQLExecutor, settings *models.CompanySettings) error {
	if f.settings != nil {
		settings.ID = f.settings.ID
	}
	stored := *settings
	f.settings = &stored
	return nil
}

func TestGetSettingsFallsBackToDefaults(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{}, &fakeTxManager{})

	settings, err := svc.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "Demo Print Shop", settings.CompanyName)
	require.NotNil(t, settings.Email)
	assert.NotEmpty(t, *settings.Email)
}

func TestUpdateSettingsPersistsProfile(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, &fakeTxManager{})

	city := "Hamburg"
	saved, err := svc.UpdateSettings(UpdateSettingsRequest{CompanyName: "Nordprint", City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Nordprint", saved.CompanyName)

	got, err := svc.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "Nordprint", got.CompanyName)
	require.NotNil(t, got.City)
	assert.Equal(t, "Hamburg", *got.City)
}

func TestUpdateSettingsKeepsSingleRow(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, &fakeTxManager{})

	first, err := svc.UpdateSettings(UpdateSettingsRequest{CompanyName: "First"})
	require.NoError(t, err)
	second, err := svc.UpdateSettings(UpdateSettingsRequest{CompanyName: "Second"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "the settings table holds one row")
	got, _ := svc.GetSettings()
	assert.Equal(t, "Second", got.CompanyName)
}
