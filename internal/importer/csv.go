// Package importer turns external statement files into ledger
// transactions. The CSV path is a four-state session: upload, column
// mapping, bounded preview, then a full-file validating commit.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pulseledger/pulse/internal/model"
	"github.com/pulseledger/pulse/internal/service"
)

// Pipeline errors.
var (
	ErrEmptyFile         = errors.New("file contains no data rows")
	ErrMappingIncomplete = errors.New("required columns are not all mapped")
	ErrNotMapped         = errors.New("column mapping has not been set")
)

// previewLimit bounds how many rows the preview phase validates.
const previewLimit = 20

// Substrings that mark a type cell as income; anything else is an
// expense.
var incomeMarkers = []string{"revenu", "income", "+"}

// Accepted date layouts.
var dateLayouts = []string{"02/01/2006", "2006-01-02"}

// State names one phase of the import session.
type State string

// Session states.
const (
	StateUpload   State = "upload"
	StateMapping  State = "mapping"
	StatePreview  State = "preview"
	StateComplete State = "complete"
)

// Mapping assigns file column indexes to transaction fields. A value
// of -1 leaves the field unmapped; Date, Description, Amount, and Type
// are required.
type Mapping struct {
	Date        int
	Description int
	Amount      int
	Type        int
	Category    int
	Account     int
}

// NewMapping returns a mapping with every field unmapped.
func NewMapping() Mapping {
	return Mapping{Date: -1, Description: -1, Amount: -1, Type: -1, Category: -1, Account: -1}
}

func (m Mapping) complete() bool {
	return m.Date >= 0 && m.Description >= 0 && m.Amount >= 0 && m.Type >= 0
}

// RowError is one rejected row, keyed by its 1-based data row number.
type RowError struct {
	Row     int
	Message string
}

func (e RowError) String() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// PreviewResult summarizes validation of the bounded preview prefix.
type PreviewResult struct {
	Rows      []model.Transaction
	Errors    []RowError
	ValidRows int
	TotalRows int
}

// CommitResult reports the outcome of the full-file commit. Errors
// carries every row rejected by re-validation so callers can surface
// failures that the bounded preview never saw.
type CommitResult struct {
	Errors   []RowError
	Inserted int
}

// Session is one CSV import in progress.
type Session struct {
	headers []string
	rows    [][]string
	mapping Mapping
	state   State
}

// NewSession reads a CSV file, treating the first row as headers. A
// file with zero data rows fails immediately.
func NewSession(r io.Reader) (*Session, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows surface as row errors, not a parse failure

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrEmptyFile
	}

	return &Session{
		headers: records[0],
		rows:    records[1:],
		mapping: NewMapping(),
		state:   StateMapping,
	}, nil
}

// Headers returns the file's header row for the mapping UI.
func (s *Session) Headers() []string {
	return s.headers
}

// State returns the session's current phase.
func (s *Session) State() State {
	return s.state
}

// SetMapping assigns columns to fields and advances to the preview
// phase. All four required fields must be mapped.
func (s *Session) SetMapping(m Mapping) error {
	if !m.complete() {
		return ErrMappingIncomplete
	}
	s.mapping = m
	s.state = StatePreview
	return nil
}

// GuessMapping proposes a mapping from common header names. The user
// confirms or corrects it before the session advances.
func (s *Session) GuessMapping() Mapping {
	m := NewMapping()
	for i, h := range s.headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "date":
			m.Date = i
		case "description", "libellé", "libelle", "label":
			m.Description = i
		case "amount", "montant":
			m.Amount = i
		case "type":
			m.Type = i
		case "category", "catégorie", "categorie":
			m.Category = i
		case "account", "compte":
			m.Account = i
		}
	}
	return m
}

// Preview validates the first previewLimit rows and reports per-row
// errors without failing the batch. The full file is re-validated at
// commit time.
func (s *Session) Preview() (*PreviewResult, error) {
	if !s.mapping.complete() {
		return nil, ErrNotMapped
	}

	result := &PreviewResult{TotalRows: len(s.rows)}
	limit := len(s.rows)
	if limit > previewLimit {
		limit = previewLimit
	}

	for i := 0; i < limit; i++ {
		txn, err := s.parseRow(s.rows[i])
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		result.Rows = append(result.Rows, *txn)
		result.ValidRows++
	}

	return result, nil
}

// Commit re-validates the entire file with the same per-row rules the
// preview used, inserts every passing row, and returns both the insert
// count and the complete error list. Rows are written one at a time
// with no rollback on partial failure; a storage error aborts the loop
// and leaves earlier rows committed. onRow, when non-nil, is invoked
// after each processed row for progress reporting.
func (s *Session) Commit(ctx context.Context, store service.Storage, onRow func(done, total int)) (*CommitResult, error) {
	if !s.mapping.complete() {
		return nil, ErrNotMapped
	}

	result := &CommitResult{}
	total := len(s.rows)

	for i, row := range s.rows {
		txn, err := s.parseRow(row)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 1, Message: err.Error()})
		} else {
			if err := store.SaveTransaction(ctx, txn); err != nil {
				return nil, fmt.Errorf("failed to commit row %d: %w", i+1, err)
			}
			result.Inserted++
		}
		if onRow != nil {
			onRow(i+1, total)
		}
	}

	s.state = StateComplete
	return result, nil
}

// parseRow applies the per-row validation rules shared by preview and
// commit.
func (s *Session) parseRow(row []string) (*model.Transaction, error) {
	dateCell, err := cell(row, s.mapping.Date)
	if err != nil {
		return nil, fmt.Errorf("missing date: %w", err)
	}
	descCell, err := cell(row, s.mapping.Description)
	if err != nil {
		return nil, fmt.Errorf("missing description: %w", err)
	}
	amountCell, err := cell(row, s.mapping.Amount)
	if err != nil {
		return nil, fmt.Errorf("missing amount: %w", err)
	}

	date, err := ParseDate(dateCell)
	if err != nil {
		return nil, err
	}

	amount, err := ParseAmount(amountCell)
	if err != nil {
		return nil, err
	}

	txn := &model.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Amount:      amount,
		Description: descCell,
		Type:        InferType(optionalCell(row, s.mapping.Type)),
		Category:    optionalCell(row, s.mapping.Category),
		Account:     optionalCell(row, s.mapping.Account),
	}
	return txn, nil
}

// ParseDate accepts DD/MM/YYYY or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", value)
}

// ParseAmount normalizes the decimal separator before parsing and
// rejects non-positive values.
func ParseAmount(value string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, fmt.Errorf("unparsable amount %q", value)
	}
	amount, _ := d.Float64()
	if amount <= 0 {
		return 0, fmt.Errorf("non-positive amount %q", value)
	}
	return amount, nil
}

// InferType maps free-text type cells onto the income/expense pair by
// case-insensitive substring match.
func InferType(value string) model.TransactionType {
	lower := strings.ToLower(value)
	for _, marker := range incomeMarkers {
		if strings.Contains(lower, marker) {
			return model.TypeIncome
		}
	}
	return model.TypeExpense
}

func cell(row []string, idx int) (string, error) {
	if idx < 0 || idx >= len(row) || strings.TrimSpace(row[idx]) == "" {
		return "", errors.New("empty cell")
	}
	return strings.TrimSpace(row[idx]), nil
}

func optionalCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
