package services

import (
	"errors"
	"fmt"

	"printshop_backend/internal/models"
	"printshop_backend/internal/repositories"
	"printshop_backend/pkg/utils"

	"github.com/google/uuid"
)

// --- Settings DTOs ---
type UpdateSettingsRequest struct {
	CompanyName  string  `json:"company_name" binding:"required"`
	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	ZipCode      *string `json:"zip_code"`
	Country      *string `json:"country"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	VatID        *string `json:"vat_id"`
	LogoURL      *string `json:"logo_url"`
}

// --- SettingsService Interface ---
type SettingsService interface {
	GetSettings() (*models.CompanySettings, error)
	UpdateSettings(req UpdateSettingsRequest) (*models.CompanySettings, error)
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	tx           repositories.TxManager
}

// NewSettingsService creates a new instance of SettingsService.
func NewSettingsService(sr repositories.SettingsRepository, tx repositories.TxManager) SettingsService {
	return &settingsService{settingsRepo: sr, tx: tx}
}

// defaultSettings stands in until the shop saves its own profile, so the
// production sheet header never renders empty.
func defaultSettings() *models.CompanySettings {
	return &models.CompanySettings{
		CompanyName:  "Demo Print Shop",
		AddressLine1: utils.NewNullString("Demo Street 1"),
		Email:        utils.NewNullString("demo@printshop.local"),
	}
}

func (s *settingsService) GetSettings() (*models.CompanySettings, error) {
	settings, err := s.settingsRepo.GetSettings()
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return defaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(req UpdateSettingsRequest) (*models.CompanySettings, error) {
	settings := &models.CompanySettings{
		ID:           uuid.NewString(),
		CompanyName:  req.CompanyName,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		Email:        req.Email,
		Phone:        req.Phone,
		VatID:        req.VatID,
		LogoURL:      req.LogoURL,
	}

	err := s.tx.WithTx(func(tx repositories.SQLExecutor) error {
		return s.settingsRepo.UpsertSettings(tx, settings)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}
