package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/relaycrm/crm-system/internal/core/domain"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

type stubImportService struct {
	importFn func(ctx context.Context, in ports.ImportInput) (*domain.ImportResult, error)
	runs     []*domain.ImportRun
	lastN    int
}

func (s *stubImportService) Import(ctx context.Context, in ports.ImportInput) (*domain.ImportResult, error) {
	return s.importFn(ctx, in)
}

func (s *stubImportService) SampleTemplate(context.Context) (*ports.Document, error) {
	return &ports.Document{Filename: "customer_sample.xlsx", ContentType: "application/x-test", Body: []byte("xlsx")}, nil
}

func (s *stubImportService) RecentRuns(_ context.Context, limit int) ([]*domain.ImportRun, error) {
	s.lastN = limit
	return s.runs, nil
}

type stubReportService struct {
	err error
}

func (s *stubReportService) CustomersPDF(context.Context) (*ports.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ports.Document{Filename: "customers_20240301.pdf", ContentType: "application/pdf", Body: []byte("%PDF")}, nil
}

func TestImportHandler_Import(t *testing.T) {
	stub := &stubImportService{
		importFn: func(ctx context.Context, in ports.ImportInput) (*domain.ImportResult, error) {
			if in.Actor.ID != 7 || in.Filename != "people.xlsx" {
				t.Fatalf("unexpected input: %+v", in)
			}
			data, _ := io.ReadAll(in.File)
			if string(data) != "workbook" {
				t.Fatalf("unexpected file body: %q", data)
			}

			r := &domain.ImportResult{}
			r.Succeeded(2, 10)
			r.Skipped(3)
			for row := 4; row < 11; row++ {
				r.Failed(row, "email is required")
			}
			return r, nil
		},
	}
	h := NewImportHandler(stub, &stubReportService{}, zerolog.Nop())

	c, rec := multipartContext(t, http.MethodPost, "/v1/customers/import", "excel_file", "people.xlsx", []byte("workbook"))
	authenticate(c)

	if err := h.Import(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeJSON(t, rec)
	if resp["success_count"] != float64(1) || resp["error_count"] != float64(7) || resp["skipped_count"] != float64(1) {
		t.Fatalf("unexpected counts: %+v", resp)
	}
	if errs := resp["errors"].([]any); len(errs) != domain.MaxDisplayedErrors {
		t.Fatalf("expected %d displayed errors, got %d", domain.MaxDisplayedErrors, len(errs))
	}
	msgs := resp["messages"].([]any)
	if len(msgs) != 2 || msgs[0] != "Successfully imported 1 customers!" {
		t.Fatalf("unexpected messages: %v", msgs)
	}
	if !strings.HasPrefix(msgs[1].(string), "Failed to import 7 customers. Errors: Row 4: email is required") {
		t.Fatalf("unexpected failure message: %v", msgs[1])
	}
}

func TestImportHandler_Import_FileError(t *testing.T) {
	stub := &stubImportService{
		importFn: func(ctx context.Context, in ports.ImportInput) (*domain.ImportResult, error) {
			return nil, fmt.Errorf("import customers: %w: zip: not a valid zip file", domain.ErrInvalidSpreadsheet)
		},
	}
	h := NewImportHandler(stub, &stubReportService{}, zerolog.Nop())

	c, _ := multipartContext(t, http.MethodPost, "/v1/customers/import", "excel_file", "x.xlsx", []byte("junk"))
	authenticate(c)

	if code := httpCode(t, h.Import(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestImportHandler_Import_MissingFile(t *testing.T) {
	h := NewImportHandler(&stubImportService{}, &stubReportService{}, zerolog.Nop())

	c, _ := multipartContext(t, http.MethodPost, "/v1/customers/import", "", "", nil)
	authenticate(c)

	if code := httpCode(t, h.Import(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestImportHandler_Sample(t *testing.T) {
	h := NewImportHandler(&stubImportService{}, &stubReportService{}, zerolog.Nop())

	c, rec := jsonContext(http.MethodGet, "/v1/customers/import/sample", "")
	if err := h.Sample(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="customer_sample.xlsx"` {
		t.Fatalf("unexpected disposition: %q", got)
	}
	if rec.Body.String() != "xlsx" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestImportHandler_Runs(t *testing.T) {
	stub := &stubImportService{runs: []*domain.ImportRun{{ID: "r1", SuccessCount: 3}}}
	h := NewImportHandler(stub, &stubReportService{}, zerolog.Nop())

	c, rec := jsonContext(http.MethodGet, "/v1/customers/import/runs", "")
	if err := h.Runs(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.lastN != recentRunsLimit {
		t.Fatalf("expected limit %d, got %d", recentRunsLimit, stub.lastN)
	}
	if !strings.Contains(rec.Body.String(), `"id":"r1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestImportHandler_ExportPDF(t *testing.T) {
	h := NewImportHandler(&stubImportService{}, &stubReportService{}, zerolog.Nop())

	c, rec := jsonContext(http.MethodGet, "/v1/customers/export/pdf", "")
	if err := h.ExportPDF(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type: %q", ct)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="customers_20240301.pdf"` {
		t.Fatalf("unexpected disposition: %q", got)
	}
}

func TestImportHandler_ExportPDF_Error(t *testing.T) {
	boom := errors.New("store down")
	h := NewImportHandler(&stubImportService{}, &stubReportService{err: boom}, zerolog.Nop())

	c, _ := jsonContext(http.MethodGet, "/v1/customers/export/pdf", "")
	if err := h.ExportPDF(c); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
