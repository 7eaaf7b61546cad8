package models

import "time"

// CompanySettings is the single-row company profile used on production
// sheets and invoices.
type CompanySettings struct {
	ID           string    `json:"id" db:"id"`
	CompanyName  string    `json:"company_name" db:"company_name"`
	AddressLine1 *string   `json:"address_line1,omitempty" db:"address_line1"`
	AddressLine2 *string   `json:"address_line2,omitempty" db:"address_line2"`
	City         *string   `json:"city,omitempty" db:"city"`
	ZipCode      *string   `json:"zip_code,omitempty" db:"zip_code"`
	Country      *string   `json:"country,omitempty" db:"country"`
	Email        *string   `json:"email,omitempty" db:"email"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	VatID        *string   `json:"vat_id,omitempty" db:"vat_id"`
	LogoURL      *string   `json:"logo_url,omitempty" db:"logo_url"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// DashboardStats is the aggregate payload for the dashboard landing page.
type DashboardStats struct {
	TotalOrders  int `json:"totalOrders"`
	InProduction int `json:"inProduction"`
	Drafts       int `json:"drafts"`
	Completed    int `json:"completed"`
	TotalClients int `json:"totalClients"`
}
