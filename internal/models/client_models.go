package models

import "time"

// Client represents a customer of the print shop.
type Client struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name" binding:"required"`
	ContactPerson *string   `json:"contact_person,omitempty" db:"contact_person"`
	Email         *string   `json:"email,omitempty" db:"email"`
	Phone         *string   `json:"phone,omitempty" db:"phone"`
	AddressLine1  *string   `json:"address_line1,omitempty" db:"address_line1"`
	AddressLine2  *string   `json:"address_line2,omitempty" db:"address_line2"`
	City          *string   `json:"city,omitempty" db:"city"`
	ZipCode       *string   `json:"zip_code,omitempty" db:"zip_code"`
	Country       *string   `json:"country,omitempty" db:"country"`
	VatID         *string   `json:"vat_id,omitempty" db:"vat_id"`
	Website       *string   `json:"website,omitempty" db:"website"`
	LogoURL       *string   `json:"logo_url,omitempty" db:"logo_url"`
	Notes         *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
