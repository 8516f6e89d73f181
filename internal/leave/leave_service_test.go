package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-absensi/internal/attendance"
	"go-absensi/internal/events"
	leaveerrors "go-absensi/internal/leave/errors"
	"go-absensi/internal/messaging/kafka"
	"go-absensi/internal/shared/dateutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeLeaveRepo struct {
	byID        map[string]*Leave
	decideOK    bool
	decideCalls int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{byID: make(map[string]*Leave), decideOK: true}
}

func (f *fakeLeaveRepo) WithTx(_ *sql.Tx) Repository { return f }

func (f *fakeLeaveRepo) Create(_ context.Context, l *Leave) error {
	f.byID[l.ID.String()] = l
	return nil
}

func (f *fakeLeaveRepo) FindByID(_ context.Context, id string) (*Leave, error) {
	if l, ok := f.byID[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepo) FindAllByEmployee(_ context.Context, employeeID string) ([]Leave, error) {
	var rows []Leave
	for _, l := range f.byID {
		if l.EmployeeID.String() == employeeID {
			rows = append(rows, *l)
		}
	}
	return rows, nil
}

func (f *fakeLeaveRepo) Search(_ context.Context, _ ListFilter) ([]Leave, error) {
	var rows []Leave
	for _, l := range f.byID {
		rows = append(rows, *l)
	}
	return rows, nil
}

func (f *fakeLeaveRepo) UpdateDecision(_ context.Context, _ uuid.UUID, _ string, _ uuid.UUID) (bool, error) {
	f.decideCalls++
	return f.decideOK, nil
}

// fakeLedger menyimulasikan ledger absensi in-memory per tanggal.
type fakeLedger struct {
	days        map[string]*attendance.DayRecord
	inserted    []string // tanggal yang di-insert
	overwritten []string // id baris yang ditimpa
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{days: make(map[string]*attendance.DayRecord)}
}

func (f *fakeLedger) WithTx(_ *sql.Tx) attendance.LedgerWriter { return f }

func (f *fakeLedger) GetForDate(_ context.Context, _ uuid.UUID, date dateutil.Date) (*attendance.DayRecord, error) {
	if rec, ok := f.days[date.String()]; ok {
		return rec, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeLedger) InsertLeaveDay(_ context.Context, _ uuid.UUID, date dateutil.Date, status string) error {
	f.inserted = append(f.inserted, date.String())
	f.days[date.String()] = &attendance.DayRecord{ID: uuid.New(), Status: status}
	return nil
}

func (f *fakeLedger) OverwriteStatus(_ context.Context, id uuid.UUID, status string) error {
	f.overwritten = append(f.overwritten, id.String())
	for _, rec := range f.days {
		if rec.ID == id {
			rec.Status = status
		}
	}
	return nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(_ *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(_ context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutbox) ListPending(_ context.Context, _ int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(_ context.Context, _ string) error   { return nil }
func (f *fakeOutbox) MarkFailed(_ context.Context, _, _ string) error { return nil }

func newDecideFixture(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func pendingLeave(repo *fakeLeaveRepo, leaveType string, start, end dateutil.Date) *Leave {
	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		LeaveType:  leaveType,
		StartDate:  start,
		EndDate:    end,
		Status:     StatusPending,
	}
	repo.byID[l.ID.String()] = l
	return l
}

func TestSubmit_Valid(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := NewService(nil, repo, newFakeLedger(), &fakeOutbox{}, time.UTC)

	today := dateutil.Today(time.UTC)
	resp, err := svc.Submit(context.Background(), uuid.NewString(), SubmitLeaveRequest{
		LeaveType: TypeAnnual,
		StartDate: today.String(),
		EndDate:   today.AddDays(2).String(),
		Reason:    "acara keluarga",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, 3, resp.TotalDays)
}

func TestSubmit_Validation(t *testing.T) {
	svc := NewService(nil, newFakeLeaveRepo(), newFakeLedger(), &fakeOutbox{}, time.UTC)
	today := dateutil.Today(time.UTC)
	empID := uuid.NewString()

	_, err := svc.Submit(context.Background(), empID, SubmitLeaveRequest{
		LeaveType: "LIBUR",
		StartDate: today.String(),
		EndDate:   today.String(),
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveType)

	_, err = svc.Submit(context.Background(), empID, SubmitLeaveRequest{
		LeaveType: TypeSick,
		StartDate: today.AddDays(3).String(),
		EndDate:   today.String(),
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)

	_, err = svc.Submit(context.Background(), empID, SubmitLeaveRequest{
		LeaveType: TypeSick,
		StartDate: today.AddDays(-1).String(),
		EndDate:   today.String(),
	})
	assert.ErrorIs(t, err, leaveerrors.ErrStartDateInPast)
}

func TestDecide_ApproveFansOutPerDay(t *testing.T) {
	db, mock := newDecideFixture(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeLeaveRepo()
	ledger := newFakeLedger()
	outbox := &fakeOutbox{}
	svc := NewService(db, repo, ledger, outbox, time.UTC)

	start := dateutil.Today(time.UTC)
	l := pendingLeave(repo, TypeAnnual, start, start.AddDays(2))

	resp, err := svc.Decide(context.Background(), l.ID.String(), uuid.NewString(), DecideLeaveRequest{Status: StatusApproved})
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, resp.Status)
	require.Len(t, ledger.inserted, 3)
	assert.Equal(t, []string{
		start.String(),
		start.AddDays(1).String(),
		start.AddDays(2).String(),
	}, ledger.inserted)
	for _, rec := range ledger.days {
		assert.Equal(t, attendance.StatusAnnual, rec.Status)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDecide_ApprovePreservesCheckedInDay(t *testing.T) {
	db, mock := newDecideFixture(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeLeaveRepo()
	ledger := newFakeLedger()
	svc := NewService(db, repo, ledger, &fakeOutbox{}, time.UTC)

	start := dateutil.Today(time.UTC)
	l := pendingLeave(repo, TypeSick, start, start.AddDays(2))

	// Hari kedua sudah check-in: barisnya tidak boleh disentuh
	day2 := start.AddDays(1)
	ledger.days[day2.String()] = &attendance.DayRecord{
		ID:         uuid.New(),
		HasClockIn: true,
		Status:     attendance.StatusPresent,
	}

	_, err := svc.Decide(context.Background(), l.ID.String(), uuid.NewString(), DecideLeaveRequest{Status: StatusApproved})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{start.String(), start.AddDays(2).String()}, ledger.inserted)
	assert.Empty(t, ledger.overwritten)
	assert.Equal(t, attendance.StatusPresent, ledger.days[day2.String()].Status)
}

func TestDecide_ApproveOverwritesNonCheckedInDay(t *testing.T) {
	db, mock := newDecideFixture(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeLeaveRepo()
	ledger := newFakeLedger()
	svc := NewService(db, repo, ledger, &fakeOutbox{}, time.UTC)

	start := dateutil.Today(time.UTC)
	l := pendingLeave(repo, TypePermit, start, start)

	existing := &attendance.DayRecord{ID: uuid.New(), Status: attendance.StatusAnnual}
	ledger.days[start.String()] = existing

	_, err := svc.Decide(context.Background(), l.ID.String(), uuid.NewString(), DecideLeaveRequest{Status: StatusApproved})
	require.NoError(t, err)

	require.Len(t, ledger.overwritten, 1)
	assert.Equal(t, existing.ID.String(), ledger.overwritten[0])
	assert.Equal(t, attendance.StatusPermit, existing.Status)
}

func TestDecide_RejectSkipsLedger(t *testing.T) {
	db, mock := newDecideFixture(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeLeaveRepo()
	ledger := newFakeLedger()
	outbox := &fakeOutbox{}
	svc := NewService(db, repo, ledger, outbox, time.UTC)

	start := dateutil.Today(time.UTC)
	l := pendingLeave(repo, TypeAnnual, start, start.AddDays(4))

	resp, err := svc.Decide(context.Background(), l.ID.String(), uuid.NewString(), DecideLeaveRequest{Status: StatusRejected})
	require.NoError(t, err)

	assert.Equal(t, StatusRejected, resp.Status)
	assert.Empty(t, ledger.inserted)
	assert.Empty(t, ledger.overwritten)
	require.Len(t, outbox.created, 1)
}

func TestDecide_EmitsOutboxEvent(t *testing.T) {
	db, mock := newDecideFixture(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeLeaveRepo()
	outbox := &fakeOutbox{}
	svc := NewService(db, repo, newFakeLedger(), outbox, time.UTC)

	start := dateutil.Today(time.UTC)
	l := pendingLeave(repo, TypeAnnual, start, start)
	decider := uuid.NewString()

	_, err := svc.Decide(context.Background(), l.ID.String(), decider, DecideLeaveRequest{Status: StatusApproved})
	require.NoError(t, err)

	require.Len(t, outbox.created, 1)
	event := outbox.created[0]
	assert.Equal(t, events.LeaveDecidedTopic, event.Topic)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)

	var payload events.LeaveDecidedEvent
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, l.ID.String(), payload.LeaveID)
	assert.Equal(t, StatusApproved, payload.Status)
	assert.Equal(t, decider, payload.DecidedBy)
}

func TestDecide_AlreadyDecided(t *testing.T) {
	db, _ := newDecideFixture(t)

	repo := newFakeLeaveRepo()
	svc := NewService(db, repo, newFakeLedger(), &fakeOutbox{}, time.UTC)

	start := dateutil.Today(time.UTC)
	l := pendingLeave(repo, TypeAnnual, start, start)
	l.Status = StatusApproved

	_, err := svc.Decide(context.Background(), l.ID.String(), uuid.NewString(), DecideLeaveRequest{Status: StatusRejected})
	assert.ErrorIs(t, err, leaveerrors.ErrAlreadyDecided)
}

func TestDecide_ConcurrentDecisionLosesRace(t *testing.T) {
	db, mock := newDecideFixture(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := newFakeLeaveRepo()
	repo.decideOK = false // baris sudah diputuskan transaksi lain
	svc := NewService(db, repo, newFakeLedger(), &fakeOutbox{}, time.UTC)

	start := dateutil.Today(time.UTC)
	l := pendingLeave(repo, TypeAnnual, start, start)

	_, err := svc.Decide(context.Background(), l.ID.String(), uuid.NewString(), DecideLeaveRequest{Status: StatusApproved})
	assert.ErrorIs(t, err, leaveerrors.ErrAlreadyDecided)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDecide_InvalidDecision(t *testing.T) {
	svc := NewService(nil, newFakeLeaveRepo(), newFakeLedger(), &fakeOutbox{}, time.UTC)
	_, err := svc.Decide(context.Background(), uuid.NewString(), uuid.NewString(), DecideLeaveRequest{Status: "MAYBE"})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDecision)
}
