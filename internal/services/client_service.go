package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"printshop_backend/internal/models"
	"printshop_backend/internal/repositories"

	"github.com/google/uuid"
)

// --- Custom Service Errors for Client ---
var (
	ErrClientHasOrders = errors.New("client has existing orders and cannot be deleted")
)

// --- Client DTOs ---
type CreateClientRequest struct {
	Name          string  `json:"name" binding:"required"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	AddressLine1  *string `json:"address_line1"`
	AddressLine2  *string `json:"address_line2"`
	City          *string `json:"city"`
	ZipCode       *string `json:"zip_code"`
	Country       *string `json:"country"`
	VatID         *string `json:"vat_id"`
	Website       *string `json:"website"`
	LogoURL       *string `json:"logo_url"`
	Notes         *string `json:"notes"`
}

type UpdateClientRequest struct {
	Name          *string `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	AddressLine1  *string `json:"address_line1"`
	AddressLine2  *string `json:"address_line2"`
	City          *string `json:"city"`
	ZipCode       *string `json:"zip_code"`
	Country       *string `json:"country"`
	VatID         *string `json:"vat_id"`
	Website       *string `json:"website"`
	LogoURL       *string `json:"logo_url"`
	Notes         *string `json:"notes"`
}

// --- ClientService Interface ---
type ClientService interface {
	CreateClient(req CreateClientRequest) (*models.Client, error)
	GetClientByID(clientID string) (*models.Client, error)
	GetClients() ([]models.Client, error)
	UpdateClient(clientID string, req UpdateClientRequest) (*models.Client, error)
	DeleteClient(clientID string) error
}

type clientService struct {
	clientRepo repositories.ClientRepository
	orderRepo  repositories.OrderRepository
	tx         repositories.TxManager
}

// NewClientService creates a new instance of ClientService.
func NewClientService(
	cr repositories.ClientRepository,
	or repositories.OrderRepository,
	tx repositories.TxManager,
) ClientService {
	return &clientService{
		clientRepo: cr,
		orderRepo:  or,
		tx:         tx,
	}
}

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

func validateClientEmail(email *string) error {
	if email == nil || *email == "" {
		return nil
	}
	if !emailRegex.MatchString(strings.ToLower(strings.TrimSpace(*email))) {
		return fmt.Errorf("%w: email format is invalid", ErrValidation)
	}
	return nil
}

func (s *clientService) CreateClient(req CreateClientRequest) (*models.Client, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if err := validateClientEmail(req.Email); err != nil {
		return nil, err
	}

	client := &models.Client{
		ID:            uuid.NewString(),
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		AddressLine1:  req.AddressLine1,
		AddressLine2:  req.AddressLine2,
		City:          req.City,
		ZipCode:       req.ZipCode,
		Country:       req.Country,
		VatID:         req.VatID,
		Website:       req.Website,
		LogoURL:       req.LogoURL,
		Notes:         req.Notes,
	}

	err := s.tx.WithTx(func(tx repositories.SQLExecutor) error {
		return s.clientRepo.CreateClient(tx, client)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client in repository: %w", err)
	}
	return client, nil
}

func (s *clientService) GetClientByID(clientID string) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return client, nil
}

func (s *clientService) GetClients() ([]models.Client, error) {
	clients, err := s.clientRepo.GetClients()
	if err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}
	return clients, nil
}

func (s *clientService) UpdateClient(clientID string, req UpdateClientRequest) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client for update: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		client.Name = *req.Name
	}
	if req.Email != nil {
		if err := validateClientEmail(req.Email); err != nil {
			return nil, err
		}
		client.Email = req.Email
	}
	if req.ContactPerson != nil {
		client.ContactPerson = req.ContactPerson
	}
	if req.Phone != nil {
		client.Phone = req.Phone
	}
	if req.AddressLine1 != nil {
		client.AddressLine1 = req.AddressLine1
	}
	if req.AddressLine2 != nil {
		client.AddressLine2 = req.AddressLine2
	}
	if req.City != nil {
		client.City = req.City
	}
	if req.ZipCode != nil {
		client.ZipCode = req.ZipCode
	}
	if req.Country != nil {
		client.Country = req.Country
	}
	if req.VatID != nil {
		client.VatID = req.VatID
	}
	if req.Website != nil {
		client.Website = req.Website
	}
	if req.LogoURL != nil {
		client.LogoURL = req.LogoURL
	}
	if req.Notes != nil {
		client.Notes = req.Notes
	}

	err = s.tx.WithTx(func(tx repositories.SQLExecutor) error {
		return s.clientRepo.UpdateClient(tx, client)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to update client in repository: %w", err)
	}
	return client, nil
}

// DeleteClient removes a client only when no orders reference it. The guard
// is a plain count check: callers must delete the client's orders first,
// there is no cascading override.
func (s *clientService) DeleteClient(clientID string) error {
	if _, err := s.clientRepo.GetClientByID(clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to find client for deletion: %w", err)
	}

	orderCount, err := s.orderRepo.CountOrdersByClientID(clientID)
	if err != nil {
		return fmt.Errorf("failed to count orders for client %s: %w", clientID, err)
	}
	if orderCount > 0 {
		return ErrClientHasOrders
	}

	err = s.tx.WithTx(func(tx repositories.SQLExecutor) error {
		return s.clientRepo.DeleteClient(tx, clientID)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		if strings.Contains(err.Error(), "violates foreign key constraint") {
			return ErrClientHasOrders
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
