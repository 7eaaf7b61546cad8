package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"printshop_backend/internal/models"
)

// SettingsRepository defines the interface for the single-row company settings.
type SettingsRepository interface {
	GetSettings() (*models.CompanySettings, error)
	UpsertSettings(executor SQLExecutor, settings *models.CompanySettings) error
}

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository.
func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

const settingsColumns = `id, company_name, address_line1, address_line2, city, zip_code,
	country, email, phone, vat_id, logo_url, updated_at`

func (r *settingsRepository) GetSettings() (*models.CompanySettings, error) {
	s := &models.CompanySettings{}
	query := `SELECT ` + settingsColumns + ` FROM settings LIMIT 1`
	err := r.db.QueryRow(query).Scan(
		&s.ID, &s.CompanyName, &s.AddressLine1, &s.AddressLine2, &s.City, &s.ZipCode,
		&s.Country, &s.Email, &s.Phone, &s.VatID, &s.LogoURL, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting settings: %v", ErrDatabaseError, err)
	}
	return s, nil
}

// UpsertSettings updates the existing settings row or inserts the first one.
// The table holds at most a single row.
func (r *settingsRepository) UpsertSettings(executor SQLExecutor, settings *models.CompanySettings) error {
	settings.UpdatedAt = time.Now()

	query := `UPDATE settings SET
	            company_name = $1, address_line1 = $2, address_line2 = $3, city = $4,
	            zip_code = $5, country = $6, email = $7, phone = $8, vat_id = $9,
	            logo_url = $10, updated_at = $11
	          RETURNING id`
	err := executor.QueryRow(query,
		settings.CompanyName, settings.AddressLine1, settings.AddressLine2, settings.City,
		settings.ZipCode, settings.Country, settings.Email, settings.Phone, settings.VatID,
		settings.LogoURL, settings.UpdatedAt,
	).Scan(&settings.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: updating settings: %v", ErrDatabaseError, err)
	}

	insert := `INSERT INTO settings
	            (id, company_name, address_line1, address_line2, city, zip_code,
	             country, email, phone, vat_id, logo_url, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = executor.Exec(insert,
		settings.ID, settings.CompanyName, settings.AddressLine1, settings.AddressLine2,
		settings.City, settings.ZipCode, settings.Country, settings.Email, settings.Phone,
		settings.VatID, settings.LogoURL, settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: inserting settings: %v", ErrDatabaseError, err)
	}
	return nil
}
