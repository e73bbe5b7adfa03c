package domain

import (
	"fmt"
	"strings"
	"time"
)

// MaxDisplayedErrors caps the row errors shown in an import summary.
// All errors are still counted.
const MaxDisplayedErrors = 5

// ImportHeaders are the template column titles, in the positional order
// the importer reads them.
var ImportHeaders = []string{
	"First Name", "Last Name", "Email", "Phone", "Address",
	"City", "State", "Country", "Postal Code", "Company", "Notes",
}

type RowStatus string

const (
	RowSucceeded RowStatus = "success"
	RowSkipped   RowStatus = "skipped"
	RowFailed    RowStatus = "failed"
)

// RowOutcome is what happened to one spreadsheet row. Row is 1-based and
// counts the header, so the first data row is 2.
type RowOutcome struct {
	Row        int       `json:"row"`
	Status     RowStatus `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	CustomerID uint      `json:"customer_id,omitempty"`
}

// ImportResult accumulates row outcomes in row order.
type ImportResult struct {
	Outcomes []RowOutcome
}

func (r *ImportResult) Succeeded(row int, customerID uint) {
	r.Outcomes = append(r.Outcomes, RowOutcome{Row: row, Status: RowSucceeded, CustomerID: customerID})
}

func (r *ImportResult) Skipped(row int) {
	r.Outcomes = append(r.Outcomes, RowOutcome{Row: row, Status: RowSkipped})
}

func (r *ImportResult) Failed(row int, reason string) {
	r.Outcomes = append(r.Outcomes, RowOutcome{Row: row, Status: RowFailed, Reason: reason})
}

func (r *ImportResult) SuccessCount() int { return r.count(RowSucceeded) }
func (r *ImportResult) ErrorCount() int   { return r.count(RowFailed) }
func (r *ImportResult) SkippedCount() int { return r.count(RowSkipped) }

func (r *ImportResult) count(s RowStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Errors returns every failed row as "Row N: reason".
func (r *ImportResult) Errors() []string {
	out := make([]string, 0)
	for _, o := range r.Outcomes {
		if o.Status == RowFailed {
			out = append(out, fmt.Sprintf("Row %d: %s", o.Row, o.Reason))
		}
	}
	return out
}

// DisplayErrors returns at most MaxDisplayedErrors row errors.
func (r *ImportResult) DisplayErrors() []string {
	errs := r.Errors()
	if len(errs) > MaxDisplayedErrors {
		errs = errs[:MaxDisplayedErrors]
	}
	return errs
}

// Messages renders the user-facing summary lines.
func (r *ImportResult) Messages() []string {
	var msgs []string
	if n := r.SuccessCount(); n > 0 {
		msgs = append(msgs, fmt.Sprintf("Successfully imported %d customers!", n))
	}
	if n := r.ErrorCount(); n > 0 {
		msgs = append(msgs, fmt.Sprintf("Failed to import %d customers. Errors: %s", n, strings.Join(r.DisplayErrors(), ", ")))
	}
	return msgs
}

// ImportRun is the audit record of one import attempt.
type ImportRun struct {
	ID            string    `json:"id"`
	Filename      string    `json:"filename"`
	ActorID       uint      `json:"actor_id"`
	ActorUsername string    `json:"actor_username"`
	SuccessCount  int       `json:"success_count"`
	ErrorCount    int       `json:"error_count"`
	SkippedCount  int       `json:"skipped_count"`
	Errors        []string  `json:"errors"`
	FileError     string    `json:"file_error,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}
