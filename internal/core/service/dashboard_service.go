package service

import (
	"context"
	"fmt"

	"github.com/relaycrm/crm-system/internal/core/ports"
)

const recentCustomersLimit = 5

type DashboardService struct {
	customers ports.CustomerRepository
	users     ports.UserRepository
}

func NewDashboardService(customers ports.CustomerRepository, users ports.UserRepository) *DashboardService {
	return &DashboardService{customers: customers, users: users}
}

func (s *DashboardService) Summary(ctx context.Context) (*ports.DashboardSummary, error) {
	totalCustomers, err := s.customers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: count customers: %w", err)
	}
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: count users: %w", err)
	}
	recent, _, err := s.customers.List(ctx, ports.CustomerFilter{Limit: recentCustomersLimit})
	if err != nil {
		return nil, fmt.Errorf("dashboard: recent customers: %w", err)
	}

	return &ports.DashboardSummary{
		TotalCustomers:  totalCustomers,
		TotalUsers:      totalUsers,
		RecentCustomers: recent,
	}, nil
}
