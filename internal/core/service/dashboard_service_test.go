package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func zeroLog() zerolog.Logger { return zerolog.Nop() }

func TestDashboardService_Summary(t *testing.T) {
	customers := newStubCustomerRepo()
	seedCustomers(t, customers, 8)
	users := newStubUserRepo()
	seedUser(t, users, "ivy", "password1", true)

	svc := NewDashboardService(customers, users)
	sum, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if sum.TotalCustomers != 8 || sum.TotalUsers != 1 {
		t.Fatalf("unexpected totals: %d customers, %d users", sum.TotalCustomers, sum.TotalUsers)
	}
	if len(sum.RecentCustomers) != 5 {
		t.Fatalf("expected 5 recent customers, got %d", len(sum.RecentCustomers))
	}
	if sum.RecentCustomers[0].ID != 8 {
		t.Fatalf("expected newest customer first, got id %d", sum.RecentCustomers[0].ID)
	}
}
