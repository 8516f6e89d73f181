package attendance

import (
	"context"
	"database/sql"

	"go-absensi/internal/shared/dateutil"

	"github.com/google/uuid"
)

// DayRecord adalah potret minimal satu baris ledger yang dibutuhkan
// approval cuti untuk memutuskan create vs overwrite.
type DayRecord struct {
	ID         uuid.UUID
	HasClockIn bool
	Status     string
}

// LedgerWriter adalah jalur tulis transaksional ke ledger absensi,
// dipakai oleh approval cuti. Semua operasi berjalan di atas *sql.Tx
// milik caller supaya fan-out per hari bersifat all-or-nothing.
type LedgerWriter interface {
	WithTx(tx *sql.Tx) LedgerWriter
	GetForDate(ctx context.Context, employeeID uuid.UUID, date dateutil.Date) (*DayRecord, error)
	InsertLeaveDay(ctx context.Context, employeeID uuid.UUID, date dateutil.Date, status string) error
	OverwriteStatus(ctx context.Context, id uuid.UUID, status string) error
}

type ledgerWriter struct {
	db *sql.DB
	tx *sql.Tx
}

func NewLedgerWriter(db *sql.DB) LedgerWriter {
	return &ledgerWriter{db: db}
}

func (w *ledgerWriter) WithTx(tx *sql.Tx) LedgerWriter {
	return &ledgerWriter{db: w.db, tx: tx}
}

type queryer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func (w *ledgerWriter) queryer() queryer {
	if w.tx != nil {
		return w.tx
	}
	return w.db
}

// GetForDate mengembalikan sql.ErrNoRows bila belum ada baris.
func (w *ledgerWriter) GetForDate(ctx context.Context, employeeID uuid.UUID, date dateutil.Date) (*DayRecord, error) {
	query := `
SELECT id, clock_in IS NOT NULL, status
FROM attendances
WHERE employee_id = $1 AND attendance_date = $2 AND deleted_at IS NULL
`
	var rec DayRecord
	err := w.queryer().QueryRowContext(ctx, query, employeeID, date.Time()).
		Scan(&rec.ID, &rec.HasClockIn, &rec.Status)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (w *ledgerWriter) InsertLeaveDay(ctx context.Context, employeeID uuid.UUID, date dateutil.Date, status string) error {
	query := `
INSERT INTO attendances (id, employee_id, attendance_date, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW(), NOW())
`
	_, err := w.queryer().ExecContext(ctx, query, uuid.New(), employeeID, date.Time(), status)
	return err
}

func (w *ledgerWriter) OverwriteStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
UPDATE attendances SET status = $2, updated_at = NOW() WHERE id = $1
`
	_, err := w.queryer().ExecContext(ctx, query, id, status)
	return err
}
