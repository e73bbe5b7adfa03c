package ports

import (
	"context"
	"io"

	"github.com/relaycrm/crm-system/internal/core/domain"
)

// Document is a generated file ready to be served as an attachment.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ImportInput is the DTO passed from the transport layer to ImportService.
type ImportInput struct {
	File     io.Reader
	Filename string
	Actor    domain.Actor
}

// ImportService runs spreadsheet imports and produces the import template.
type ImportService interface {
	// Import creates one customer per usable row. A non-nil error means the
	// file itself could not be read and nothing was written.
	Import(ctx context.Context, in ImportInput) (*domain.ImportResult, error)
	SampleTemplate(ctx context.Context) (*Document, error)
	RecentRuns(ctx context.Context, limit int) ([]*domain.ImportRun, error)
}

// ReportService renders customer reports.
type ReportService interface {
	CustomersPDF(ctx context.Context) (*Document, error)
}
