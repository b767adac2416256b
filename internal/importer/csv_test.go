package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseledger/pulse/internal/model"
	"github.com/pulseledger/pulse/internal/service"
	"github.com/pulseledger/pulse/internal/storage"
)

func newTestStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

const sampleCSV = `Date,Type,Libellé,Montant,Catégorie
01/03/2026,Dépense,Supermarché,"45,80",Alimentation
02/03/2026,Revenu,Salaire mars,2500.00,Salaire
03/03/2026,Dépense,Essence,60.00,Transport
`

func newMappedSession(t *testing.T, data string) *Session {
	t.Helper()
	session, err := NewSession(strings.NewReader(data))
	require.NoError(t, err)
	require.NoError(t, session.SetMapping(session.GuessMapping()))
	return session
}

func TestNewSession_EmptyFile(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "completely empty", data: ""},
		{name: "header only", data: "Date,Libellé,Montant,Type\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSession(strings.NewReader(tt.data))
			assert.ErrorIs(t, err, ErrEmptyFile)
		})
	}
}

func TestGuessMapping_FrenchHeaders(t *testing.T) {
	session, err := NewSession(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, StateMapping, session.State())

	m := session.GuessMapping()
	assert.Equal(t, 0, m.Date)
	assert.Equal(t, 1, m.Type)
	assert.Equal(t, 2, m.Description)
	assert.Equal(t, 3, m.Amount)
	assert.Equal(t, 4, m.Category)
	assert.Equal(t, -1, m.Account)
}

func TestSetMapping_Incomplete(t *testing.T) {
	session, err := NewSession(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	m := NewMapping()
	m.Date = 0
	// Description, Amount, and Type stay unmapped.
	assert.ErrorIs(t, session.SetMapping(m), ErrMappingIncomplete)
	assert.Equal(t, StateMapping, session.State())
}

func TestPreview(t *testing.T) {
	session := newMappedSession(t, sampleCSV)
	assert.Equal(t, StatePreview, session.State())

	preview, err := session.Preview()
	require.NoError(t, err)

	assert.Equal(t, 3, preview.TotalRows)
	assert.Equal(t, 3, preview.ValidRows)
	assert.Empty(t, preview.Errors)
	require.Len(t, preview.Rows, 3)

	first := preview.Rows[0]
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, model.TypeExpense, first.Type)
	assert.InDelta(t, 45.80, first.Amount, 1e-9, "comma decimal separators are normalized")
	assert.Equal(t, "Supermarché", first.Description)

	assert.Equal(t, model.TypeIncome, preview.Rows[1].Type)
}

func TestPreview_ReportsRowErrors(t *testing.T) {
	data := "Date,Type,Libellé,Montant\n" +
		"01/03/2026,Dépense,OK,10.00\n" +
		"pas-une-date,Dépense,Bad date,10.00\n" +
		"03/03/2026,Dépense,Bad amount,abc\n" +
		"04/03/2026,Dépense,Negative,-5\n" +
		"05/03/2026,Dépense,,10.00\n"

	session := newMappedSession(t, data)
	preview, err := session.Preview()
	require.NoError(t, err)

	assert.Equal(t, 5, preview.TotalRows)
	assert.Equal(t, 1, preview.ValidRows)
	require.Len(t, preview.Errors, 4)
	// Row numbers are 1-based over data rows.
	assert.Equal(t, 2, preview.Errors[0].Row)
	assert.Contains(t, preview.Errors[0].Message, "date")
}

func TestPreview_BoundedAtTwenty(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Date,Type,Libellé,Montant\n")
	for i := 1; i <= 30; i++ {
		fmt.Fprintf(&sb, "%02d/03/2026,Dépense,Ligne %d,10.00\n", (i%28)+1, i)
	}

	session := newMappedSession(t, sb.String())
	preview, err := session.Preview()
	require.NoError(t, err)

	assert.Equal(t, 30, preview.TotalRows)
	assert.Equal(t, 20, preview.ValidRows, "preview validates only the first 20 rows")
	assert.Len(t, preview.Rows, 20)
}

func TestPreview_BeforeMapping(t *testing.T) {
	session, err := NewSession(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	_, err = session.Preview()
	assert.ErrorIs(t, err, ErrNotMapped)
}

func TestCommit(t *testing.T) {
	// 10 data rows, 2 with unparsable dates.
	var sb strings.Builder
	sb.WriteString("Date,Type,Libellé,Montant\n")
	for i := 1; i <= 10; i++ {
		date := fmt.Sprintf("%02d/03/2026", i)
		if i == 4 || i == 7 {
			date = "bogus"
		}
		fmt.Fprintf(&sb, "%s,Dépense,Ligne %d,10.00\n", date, i)
	}

	session := newMappedSession(t, sb.String())
	store := newTestStore(t)
	ctx := context.Background()

	preview, err := session.Preview()
	require.NoError(t, err)
	assert.Equal(t, 8, preview.ValidRows)
	assert.Len(t, preview.Errors, 2)

	var progressCalls int
	result, err := session.Commit(ctx, store, func(done, total int) {
		progressCalls++
		assert.Equal(t, 10, total)
		assert.Equal(t, progressCalls, done)
	})
	require.NoError(t, err)

	assert.Equal(t, 8, result.Inserted)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 4, result.Errors[0].Row)
	assert.Equal(t, 7, result.Errors[1].Row)
	assert.Equal(t, 10, progressCalls)
	assert.Equal(t, StateComplete, session.State())

	txns, err := store.GetTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, txns, 8)
}

func TestCommit_ErrorsBeyondPreviewWindow(t *testing.T) {
	// A bad row past the 20-row preview window is invisible to the
	// preview but still caught at commit time.
	var sb strings.Builder
	sb.WriteString("Date,Type,Libellé,Montant\n")
	for i := 1; i <= 25; i++ {
		date := fmt.Sprintf("%02d/03/2026", (i%28)+1)
		if i == 23 {
			date = "bogus"
		}
		fmt.Fprintf(&sb, "%s,Dépense,Ligne %d,10.00\n", date, i)
	}

	session := newMappedSession(t, sb.String())

	preview, err := session.Preview()
	require.NoError(t, err)
	assert.Empty(t, preview.Errors)

	result, err := session.Commit(context.Background(), newTestStore(t), nil)
	require.NoError(t, err)
	assert.Equal(t, 24, result.Inserted)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 23, result.Errors[0].Row)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "french layout", value: "15/03/2026", want: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "iso layout", value: "2026-03-15", want: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", value: "15 mars 2026", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    float64
		wantErr bool
	}{
		{name: "dot decimal", value: "45.80", want: 45.80},
		{name: "comma decimal", value: "45,80", want: 45.80},
		{name: "surrounding spaces", value: " 12,50 ", want: 12.50},
		{name: "zero", value: "0", wantErr: true},
		{name: "negative", value: "-3,20", wantErr: true},
		{name: "not a number", value: "douze", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestInferType(t *testing.T) {
	assert.Equal(t, model.TypeIncome, InferType("Revenu"))
	assert.Equal(t, model.TypeIncome, InferType("income"))
	assert.Equal(t, model.TypeIncome, InferType("+"))
	assert.Equal(t, model.TypeExpense, InferType("Dépense"))
	assert.Equal(t, model.TypeExpense, InferType(""))
}
