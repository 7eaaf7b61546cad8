package services

import (
	"fmt"

	"printshop_backend/internal/models"
	"printshop_backend/internal/repositories"
)

// DashboardResponse is the aggregate payload for the dashboard landing page.
type DashboardResponse struct {
	Stats        models.DashboardStats `json:"stats"`
	RecentOrders []models.Order        `json:"recentOrders"`
}

// --- DashboardService Interface ---
type DashboardService interface {
	GetStats() (*DashboardResponse, error)
}

type dashboardService struct {
	orderRepo  repositories.OrderRepository
	clientRepo repositories.ClientRepository
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(or repositories.OrderRepository, cr repositories.ClientRepository) DashboardService {
	return &dashboardService{orderRepo: or, clientRepo: cr}
}

const recentOrdersLimit = 5

func (s *dashboardService) GetStats() (*DashboardResponse, error) {
	statusCounts, err := s.orderRepo.CountOrdersByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}

	totalOrders := 0
	for _, count := range statusCounts {
		totalOrders += count
	}

	clientCount, err := s.clientRepo.CountClients()
	if err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	recent, err := s.orderRepo.GetRecentOrders(recentOrdersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent orders: %w", err)
	}

	return &DashboardResponse{
		Stats: models.DashboardStats{
			TotalOrders:  totalOrders,
			InProduction: statusCounts[StatusProduction],
			Drafts:       statusCounts[StatusDraft],
			Completed:    statusCounts[StatusDone],
			TotalClients: clientCount,
		},
		RecentOrders: recent,
	}, nil
}
