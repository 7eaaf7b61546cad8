package services

import (
	"testing"

	"printshop_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientServiceForTest() (ClientService, *fakeClientRepo, *fakeOrderRepo) {
	clientRepo := newFakeClientRepo()
	orderRepo := newFakeOrderRepo()
	svc := NewClientService(clientRepo, orderRepo, &fakeTxManager{})
	return svc, clientRepo, orderRepo
}

func TestCreateClient(t *testing.T) {
	svc, _, _ := newClientServiceForTest()

	email := "orders@acme.example"
	client, err := svc.CreateClient(CreateClientRequest{Name: "Acme GmbH", Email: &email})
	require.NoError(t, err)
	assert.NotEmpty(t, client.ID)
	assert.Equal(t, "Acme GmbH", client.Name)

	got, err := svc.GetClientByID(client.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, got.ID)
}

func TestCreateClientRejectsBlankName(t *testing.T) {
	svc, _, _ := newClientServiceForTest()

	_, err := svc.CreateClient(CreateClientRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateClientRejectsMalformedEmail(t *testing.T) {
	svc, _, _ := newClientServiceForTest()

	bad := "not-an-email"
	_, err := svc.CreateClient(CreateClientRequest{Name: "Acme", Email: &bad})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateClientMergesOnlyProvidedFields(t *testing.T) {
	svc, _, _ := newClientServiceForTest()

	phone := "+49 30 1234567"
	client, err := svc.CreateClient(CreateClientRequest{Name: "Acme GmbH", Phone: &phone})
	require.NoError(t, err)

	city := "Berlin"
	updated, err := svc.UpdateClient(client.ID, UpdateClientRequest{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Acme GmbH", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)
	require.NotNil(t, updated.City)
	assert.Equal(t, "Berlin", *updated.City)
}

func TestDeleteClientWithOrdersIsRefused(t *testing.T) {
	svc, clientRepo, orderRepo := newClientServiceForTest()

	require.NoError(t, clientRepo.CreateClient(nil, &models.Client{ID: "c1", Name: "Busy Client"}))
	require.NoError(t, orderRepo.CreateOrder(nil, &models.Order{ID: "o1", ClientID: "c1", CustomerName: "Busy Client", Status: StatusDraft}))

	err := svc.DeleteClient("c1")
	assert.ErrorIs(t, err, ErrClientHasOrders)

	// The client must still exist after the refused delete.
	_, err = svc.GetClientByID("c1")
	assert.NoError(t, err)
}

func TestDeleteClientWithoutOrders(t *testing.T) {
	svc, clientRepo, _ := newClientServiceForTest()

	require.NoError(t, clientRepo.CreateClient(nil, &models.Client{ID: "c1", Name: "Idle Client"}))

	require.NoError(t, svc.DeleteClient("c1"))

	_, err := svc.GetClientByID("c1")
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestDeleteClientNotFound(t *testing.T) {
	svc, _, _ := newClientServiceForTest()
	assert.ErrorIs(t, svc.DeleteClient("missing"), ErrClientNotFound)
}
