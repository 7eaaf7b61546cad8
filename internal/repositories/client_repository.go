package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"printshop_backend/internal/models"

	"github.com/lib/pq"
)

// ClientRepository defines the interface for client-related database operations.
type ClientRepository interface {
	CreateClient(executor SQLExecutor, client *models.Client) error
	GetClientByID(clientID string) (*models.Client, error)
	GetClients() ([]models.Client, error)
	UpdateClient(executor SQLExecutor, client *models.Client) error
	DeleteClient(executor SQLExecutor, clientID string) error
	CountClients() (int, error)
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, name, contact_person, email, phone, address_line1, address_line2,
	city, zip_code, country, vat_id, website, logo_url, notes, created_at`

func scanClient(s scanner, c *models.Client) error {
	return s.Scan(
		&c.ID, &c.Name, &c.ContactPerson, &c.Email, &c.Phone, &c.AddressLine1, &c.AddressLine2,
		&c.City, &c.ZipCode, &c.Country, &c.VatID, &c.Website, &c.LogoURL, &c.Notes, &c.CreatedAt,
	)
}

func (r *clientRepository) CreateClient(executor SQLExecutor, client *models.Client) error {
	query := `INSERT INTO clients
	            (id, name, contact_person, email, phone, address_line1, address_line2,
	             city, zip_code, country, vat_id, website, logo_url, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now()
	}

	_, err := executor.Exec(query,
		client.ID, client.Name, client.ContactPerson, client.Email, client.Phone,
		client.AddressLine1, client.AddressLine2, client.City, client.ZipCode, client.Country,
		client.VatID, client.Website, client.LogoURL, client.Notes, client.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%w: creating client (constraint: %s)", ErrDuplicateKey, pqErr.Constraint)
		}
		return fmt.Errorf("%w: creating client: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *clientRepository) GetClientByID(clientID string) (*models.Client, error) {
	client := &models.Client{}
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	err := scanClient(r.db.QueryRow(query, clientID), client)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by ID %s: %v", ErrDatabaseError, clientID, err)
	}
	return client, nil
}

func (r *clientRepository) GetClients() ([]models.Client, error) {
	clients := []models.Client{}
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Client
		if err := scanClient(rows, &c); err != nil {
			return nil, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
		}
		clients = append(clients, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	return clients, nil
}

func (r *clientRepository) UpdateClient(executor SQLExecutor, client *models.Client) error {
	query := `UPDATE clients SET
	            name = $1, contact_person = $2, email = $3, phone = $4,
	            address_line1 = $5, address_line2 = $6, city = $7, zip_code = $8,
	            country = $9, vat_id = $10, website = $11, logo_url = $12, notes = $13
	          WHERE id = $14`
	result, err := executor.Exec(query,
		client.Name, client.ContactPerson, client.Email, client.Phone,
		client.AddressLine1, client.AddressLine2, client.City, client.ZipCode,
		client.Country, client.VatID, client.Website, client.LogoURL, client.Notes,
		client.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating client %s: %v", ErrDatabaseError, client.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for client update %s: %v", ErrDatabaseError, client.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *clientRepository) DeleteClient(executor SQLExecutor, clientID string) error {
	result, err := executor.Exec(`DELETE FROM clients WHERE id = $1`, clientID)
	if err != nil {
		return fmt.Errorf("%w: deleting client %s: %v", ErrDatabaseError, clientID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting client %s: %v", ErrDatabaseError, clientID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *clientRepository) CountClients() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM clients`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting clients: %v", ErrDatabaseError, err)
	}
	return count, nil
}
