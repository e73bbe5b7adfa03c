package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/relaycrm/crm-system/internal/core/domain"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

const PDFContentType = "application/pdf"

// CustomerRenderer abstracts the PDF table renderer (fpdf).
type CustomerRenderer interface {
	RenderCustomers(w io.Writer, customers []*domain.Customer, generatedAt time.Time) error
}

type ReportService struct {
	customers ports.CustomerRepository
	renderer  CustomerRenderer
	log       zerolog.Logger
	now       func() time.Time
}

func NewReportService(customers ports.CustomerRepository, renderer CustomerRenderer, log zerolog.Logger) *ReportService {
	return &ReportService{customers: customers, renderer: renderer, log: log, now: time.Now}
}

// CustomersPDF renders every customer, in store order, as a PDF table.
func (s *ReportService) CustomersPDF(ctx context.Context) (*ports.Document, error) {
	customers, err := s.customers.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("customers report: %w", err)
	}

	generatedAt := s.now()
	var buf bytes.Buffer
	if err := s.renderer.RenderCustomers(&buf, customers, generatedAt); err != nil {
		return nil, fmt.Errorf("customers report: render: %w", err)
	}

	s.log.Info().Int("customers", len(customers)).Int("bytes", buf.Len()).Msg("customers report generated")

	return &ports.Document{
		Filename:    "customers_" + generatedAt.Format("20060102") + ".pdf",
		ContentType: PDFContentType,
		Body:        buf.Bytes(),
	}, nil
}
