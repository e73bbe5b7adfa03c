package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/relaycrm/crm-system/internal/core/domain"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

const (
	SampleFilename  = "customer_sample.xlsx"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// RowReader abstracts the workbook parser (excelize).
type RowReader interface {
	// ReadRows returns every row of the active sheet, header included.
	ReadRows(r io.Reader) ([][]string, error)
}

// TemplateWriter abstracts the sample workbook builder.
type TemplateWriter interface {
	SampleTemplate() ([]byte, error)
}

// ImportOptions tunes the import pipeline.
type ImportOptions struct {
	// StrictHeaders rejects files whose first row does not match
	// domain.ImportHeaders. Off by default: columns are read by position.
	StrictHeaders bool
}

type importService struct {
	customers ports.CustomerRepository
	reader    RowReader
	template  TemplateWriter
	audit     ports.ImportAuditRepository // optional
	opts      ImportOptions
	log       zerolog.Logger
	now       func() time.Time
}

// NewImportService returns an ImportService implementation. audit may be nil,
// in which case runs are not recorded.
func NewImportService(
	customers ports.CustomerRepository,
	reader RowReader,
	template TemplateWriter,
	audit ports.ImportAuditRepository,
	opts ImportOptions,
	log zerolog.Logger,
) ports.ImportService {
	return &importService{
		customers: customers,
		reader:    reader,
		template:  template,
		audit:     audit,
		opts:      opts,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Import parses the whole file first, then persists row by row.
func (s *importService) Import(ctx context.Context, in ports.ImportInput) (*domain.ImportResult, error) {
	run := &domain.ImportRun{
		ID:            uuid.NewString(),
		Filename:      in.Filename,
		ActorID:       in.Actor.ID,
		ActorUsername: in.Actor.Username,
		StartedAt:     s.now(),
	}

	rows, err := s.reader.ReadRows(in.File)
	if err == nil && s.opts.StrictHeaders {
		err = checkHeaders(rows)
	}
	if err != nil {
		run.FileError = err.Error()
		run.FinishedAt = s.now()
		s.record(ctx, run)
		s.log.Warn().Err(err).Str("file", in.Filename).Msg("import rejected")
		return nil, fmt.Errorf("import customers: %w", err)
	}

	// Rows keep going even if the caller goes away.
	rowCtx := context.WithoutCancel(ctx)

	result := &domain.ImportResult{}
	for i := 1; i < len(rows); i++ {
		s.importRow(rowCtx, i+1, rows[i], in.Actor, result)
	}

	run.SuccessCount = result.SuccessCount()
	run.ErrorCount = result.ErrorCount()
	run.SkippedCount = result.SkippedCount()
	run.Errors = result.Errors()
	run.FinishedAt = s.now()
	s.record(rowCtx, run)

	s.log.Info().
		Str("run_id", run.ID).
		Str("file", in.Filename).
		Uint("actor_id", in.Actor.ID).
		Int("success", run.SuccessCount).
		Int("errors", run.ErrorCount).
		Int("skipped", run.SkippedCount).
		Msg("import finished")

	return result, nil
}

func (s *importService) importRow(ctx context.Context, rowNum int, row []string, actor domain.Actor, result *domain.ImportResult) {
	col := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	if col(0) == "" || col(1) == "" || col(2) == "" {
		result.Skipped(rowNum)
		return
	}

	c := &domain.Customer{
		FirstName:  col(0),
		LastName:   col(1),
		Email:      col(2),
		Phone:      col(3),
		Address:    col(4),
		City:       col(5),
		State:      col(6),
		Country:    col(7),
		PostalCode: col(8),
		Company:    col(9),
		Notes:      col(10),
	}
	if actor.ID != 0 {
		id := actor.ID
		c.CreatedByID = &id
	}

	if err := s.customers.Create(ctx, c); err != nil {
		result.Failed(rowNum, rowFailureReason(err))
		s.log.Debug().Err(err).Int("row", rowNum).Msg("import row failed")
		return
	}
	result.Succeeded(rowNum, c.ID)
}

func rowFailureReason(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return err.Error()
}

func checkHeaders(rows [][]string) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: missing header row", domain.ErrInvalidSpreadsheet)
	}
	header := rows[0]
	for i, want := range domain.ImportHeaders {
		got := ""
		if i < len(header) {
			got = header[i]
		}
		if !strings.EqualFold(strings.TrimSpace(got), want) {
			return fmt.Errorf("%w: column %d header is %q, expected %q", domain.ErrInvalidSpreadsheet, i+1, got, want)
		}
	}
	return nil
}

// record writes the audit entry. Failures are logged and never surface.
func (s *importService) record(ctx context.Context, run *domain.ImportRun) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, run); err != nil {
		s.log.Warn().Err(err).Str("run_id", run.ID).Msg("failed to record import run")
	}
}

func (s *importService) SampleTemplate(_ context.Context) (*ports.Document, error) {
	body, err := s.template.SampleTemplate()
	if err != nil {
		return nil, fmt.Errorf("sample template: %w", err)
	}
	return &ports.Document{Filename: SampleFilename, ContentType: XLSXContentType, Body: body}, nil
}

func (s *importService) RecentRuns(ctx context.Context, limit int) ([]*domain.ImportRun, error) {
	if s.audit == nil {
		return []*domain.ImportRun{}, nil
	}
	runs, err := s.audit.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent import runs: %w", err)
	}
	return runs, nil
}
