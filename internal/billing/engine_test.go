package billing

import (
	"testing"
	"time"

	"github.com/leoroquedesan-droid/leo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Member{}, &models.Booking{}, &models.Payment{}))
	return db
}

func seedMember(t *testing.T, db *gorm.DB, name string, due *time.Time, enrolled time.Time) models.Member {
	t.Helper()
	m := models.Member{Name: name, NextDueDate: due, EnrolledOn: enrolled}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func ptr(t time.Time) *time.Time { return &t }

func TestOverdueMembers(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db)
	today := date(2024, time.June, 15)

	seedMember(t, db, "Ana", ptr(date(2024, time.June, 10)), today)
	seedMember(t, db, "Bruno", ptr(date(2024, time.June, 20)), today) // not yet due
	seedMember(t, db, "Carla", nil, today)                           // never billed
	seedMember(t, db, "Davi", ptr(date(2024, time.May, 5)), today)

	count, members, err := e.OverdueMembers(today, "")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, members, 2)
	assert.Equal(t, "Davi", members[0].Name) // oldest debt first
	assert.Equal(t, "Ana", members[1].Name)
}

func TestOverdueMembers_DueTodayIsNotOverdue(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db)
	today := date(2024, time.June, 15)

	seedMember(t, db, "Ana", ptr(today), today)

	count, members, err := e.OverdueMembers(today, "")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, members)
}

func TestOverdueMembers_NullDueDateNeverOverdue(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db)

	seedMember(t, db, "Ana", nil, date(2000, time.January, 1))

	// no matter how far in the future "today" is
	count, members, err := e.OverdueMembers(date(2999, time.December, 31), "")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, members)
}

// TestOverdueMembers_NonUTCServerClock stored due dates are UTC midnights;
// a "today" carrying a western-offset wall clock must not push the boundary
// past them and flag a member due today as overdue
func TestOverdueMembers_NonUTCServerClock(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db)

	// due exactly today (UTC midnight)
	seedMember(t, db, "Ana", ptr(date(2024, time.June, 15)), date(2024, time.January, 1))

	brt := time.FixedZone("BRT", -3*60*60)
	today := time.Date(2024, time.June, 15, 10, 0, 0, 0, brt)

	count, members, err := e.OverdueMembers(today, "")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, members)
}

func TestOverdueMembers_StableOrderOnTies(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db)
	today := date(2024, time.June, 15)
	due := ptr(date(2024, time.June, 1))

	first := seedMember(t, db, "Ana", due, today)
	second := seedMember(t, db, "Bruno", due, today)
	third := seedMember(t, db, "Carla", due, today)

	_, members, err := e.OverdueMembers(today, "")
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, []uint{first.ID, second.ID, third.ID},
		[]uint{members[0].ID, members[1].ID, members[2].ID})
}

func TestOverdueMembers_NameFilter(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db)
	today := date(2024, time.June, 15)
	due := ptr(date(2024, time.June, 1))

	seedMember(t, db, "Maria Silva", due, today)
	seedMember(t, db, "João Souza", due, today)

	count, members, err := e.OverdueMembers(today, "SILVA")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, members, 1)
	assert.Equal(t, "Maria Silva", members[0].Name)
}

func TestNewMembers_Window(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db)
	today := date(2024, time.June, 30)

	recent := seedMember(t, db, "Ana", nil, date(2024, time.June, 29))
	edge := seedMember(t, db, "Bruno", nil, date(2024, time.May, 31)) // exactly 30 days back
	seedMember(t, db, "Carla", nil, date(2024, time.May, 1))         // too old

	members, err := e.NewMembers(today, "")
	require.NoError(t, err)
	require.Len(t, members, 2)
	// most recent first
	assert.Equal(t, recent.ID, members[0].ID)
	assert.Equal(t, edge.ID, members[1].ID)
}

func TestNewMembers_NameFilter(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db)
	today := date(2024, time.June, 30)

	seedMember(t, db, "Maria Silva", nil, today)
	seedMember(t, db, "João Souza", nil, today)

	members, err := e.NewMembers(today, "joão")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "João Souza", members[0].Name)
}

func TestUpcomingBookings(t *testing.T) {
	today := date(2024, time.June, 15)
	bookings := []models.Booking{
		{ID: 1, Venue: "Salão Azul", Date: "2024-06-15"},  // today
		{ID: 2, Venue: "Salão Verde", Date: "2024-06-18"}, // +3, inclusive
		{ID: 3, Venue: "Salão Rosa", Date: "2024-06-19"},  // +4, out
		{ID: 4, Venue: "Salão Preto", Date: "2024-06-14"}, // yesterday, out
		{ID: 5, Venue: "Salão Cinza", Date: "not-a-date"}, // legacy garbage, skipped
		{ID: 6, Venue: "Salão Bege", Date: ""},            // empty, skipped
	}

	got := UpcomingBookings(today, bookings)
	require.Len(t, got, 2)
	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, uint(2), got[1].ID)
}

func TestUpcomingBookings_MalformedNeverCounted(t *testing.T) {
	today := date(2024, time.June, 15)
	bookings := []models.Booking{
		{ID: 1, Date: "15/06/2024"},
		{ID: 2, Date: "amanhã"},
	}

	got := UpcomingBookings(today, bookings)
	assert.Len(t, got, 0)
}

func seedPayment(t *testing.T, db *gorm.DB, memberID uint, paidOn time.Time, ref string) models.Payment {
	t.Helper()
	p := models.Payment{
		MemberID:    memberID,
		PaidOn:      paidOn,
		CoversUntil: paidOn.AddDate(0, 1, 0),
		ReceiptRef:  ref,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestMonthLedger(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db)
	today := date(2024, time.June, 15)

	m := seedMember(t, db, "Ana", nil, today)
	early := seedPayment(t, db, m.ID, date(2024, time.June, 2), "r1")
	late := seedPayment(t, db, m.ID, date(2024, time.June, 10), "r2")
	seedPayment(t, db, m.ID, date(2024, time.May, 31), "r3") // previous month

	year, month, entries, err := e.MonthLedger("2024-06", today, "")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.June, month)
	require.Len(t, entries, 2)
	// newest first
	assert.Equal(t, late.ID, entries[0].ID)
	assert.Equal(t, early.ID, entries[1].ID)
	assert.Equal(t, "Ana", entries[0].Member.Name) // member preloaded
}

func TestMonthLedger_DefaultsToCurrentPeriod(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db)
	today := date(2024, time.June, 15)

	m := seedMember(t, db, "Ana", nil, today)
	inMonth := seedPayment(t, db, m.ID, date(2024, time.June, 1), "r1")
	seedPayment(t, db, m.ID, date(2024, time.April, 1), "r2")

	for _, period := range []string{"", "06/2024", "junho", "2024-13"} {
		year, month, entries, err := e.MonthLedger(period, today, "")
		require.NoError(t, err)
		assert.Equal(t, 2024, year, "period %q", period)
		assert.Equal(t, time.June, month, "period %q", period)
		require.Len(t, entries, 1, "period %q", period)
		assert.Equal(t, inMonth.ID, entries[0].ID)
	}
}

// TestMonthLedger_NonUTCServerClock a payment on the first of the month
// (stored as a UTC midnight) stays in that month even when the server runs
// behind UTC
func TestMonthLedger_NonUTCServerClock(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db)

	brt := time.FixedZone("BRT", -3*60*60)
	today := time.Date(2024, time.June, 15, 12, 0, 0, 0, brt)

	m := seedMember(t, db, "Ana", nil, date(2024, time.January, 1))
	first := seedPayment(t, db, m.ID, date(2024, time.June, 1), "r1")

	_, _, entries, err := e.MonthLedger("2024-06", today, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, first.ID, entries[0].ID)
}

func TestMonthLedger_NameFilter(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db)
	today := date(2024, time.June, 15)

	ana := seedMember(t, db, "Ana Lima", nil, today)
	bruno := seedMember(t, db, "Bruno Costa", nil, today)
	seedPayment(t, db, ana.ID, date(2024, time.June, 5), "r1")
	seedPayment(t, db, bruno.ID, date(2024, time.June, 6), "r2")

	_, _, entries, err := e.MonthLedger("2024-06", today, "lima")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ana.ID, entries[0].MemberID)
}

func TestTotalMembers(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db)

	seedMember(t, db, "Ana", nil, date(2024, time.June, 1))
	seedMember(t, db, "Bruno", nil, date(2024, time.June, 2))

	n, err := e.TotalMembers()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
