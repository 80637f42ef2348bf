package billing

import (
	"strings"
	"time"

	"github.com/leoroquedesan-droid/leo/internal/models"

	"gorm.io/gorm"
)

// Engine derives the arrears and monthly views over the member roster and
// the payment ledger. It is stateless apart from the database handle; the
// caller decides who may invoke it.
type Engine struct {
	DB *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{DB: db}
}

// newMemberWindowDays is the trailing window for the "novos associados"
// report.
const newMemberWindowDays = 30

// upcomingWindowDays is how far ahead the dashboard looks for bookings.
const upcomingWindowDays = 3

// nameLike builds the case-insensitive substring pattern every report
// applies when a name filter is present.
func nameLike(filter string) string {
	return "%" + strings.ToLower(filter) + "%"
}

// OverdueMembers returns the members whose next due date has passed,
// soonest-recoverable first (ties keep insertion order). Members that were
// never billed (NULL next due date) are never overdue. The count is the
// length of the list, exposed separately for the dashboard cards.
func (e *Engine) OverdueMembers(today time.Time, nameFilter string) (int, []models.Member, error) {
	q := e.DB.Model(&models.Member{}).
		Where("next_due_date IS NOT NULL AND next_due_date < ?", dateOnly(today))
	if nameFilter != "" {
		q = q.Where("LOWER(name) LIKE ?", nameLike(nameFilter))
	}

	var members []models.Member
	if err := q.Order("next_due_date ASC, id ASC").Find(&members).Error; err != nil {
		return 0, nil, err
	}
	return len(members), members, nil
}

// NewMembers returns members enrolled within the last 30 days, most recent
// first.
func (e *Engine) NewMembers(today time.Time, nameFilter string) ([]models.Member, error) {
	cutoff := dateOnly(today).AddDate(0, 0, -newMemberWindowDays)

	q := e.DB.Model(&models.Member{}).Where("enrolled_on >= ?", cutoff)
	if nameFilter != "" {
		q = q.Where("LOWER(name) LIKE ?", nameLike(nameFilter))
	}

	var members []models.Member
	if err := q.Order("enrolled_on DESC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// UpcomingBookings keeps the bookings happening between today and three
// days from now, inclusive. A booking whose date field does not parse as an
// ISO calendar date is dropped from the view entirely — it neither appears
// in the list nor inflates any count. Legacy rows with free-text dates are
// expected and are not an error.
func UpcomingBookings(today time.Time, bookings []models.Booking) []models.Booking {
	day := dateOnly(today)

	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		d, err := time.Parse(DateLayout, b.Date)
		if err != nil {
			continue
		}
		days := int(d.Sub(day).Hours() / 24)
		if days >= 0 && days <= upcomingWindowDays {
			out = append(out, b)
		}
	}
	return out
}

// MonthLedger returns the ledger entries paid in the requested period,
// newest first. The period comes in as a raw "YYYY-MM" string; when absent
// or malformed it resolves to today's year and month, and the resolved
// values are returned so the caller can label the report with what was
// actually used.
func (e *Engine) MonthLedger(period string, today time.Time, nameFilter string) (int, time.Month, []models.Payment, error) {
	year, month := resolvePeriod(period, today)

	// UTC boundaries, matching how paid_on dates are stored
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	q := e.DB.Model(&models.Payment{}).Preload("Member").
		Where("paid_on >= ? AND paid_on < ?", start, end)
	if nameFilter != "" {
		q = q.Select("payments.*").
			Joins("JOIN members ON members.id = payments.member_id").
			Where("LOWER(members.name) LIKE ?", nameLike(nameFilter))
	}

	var entries []models.Payment
	if err := q.Order("paid_on DESC").Find(&entries).Error; err != nil {
		return 0, 0, nil, err
	}
	return year, month, entries, nil
}

// resolvePeriod parses "YYYY-MM", falling back to today's period for
// anything malformed. The fallback is deliberate: a bad month selector in
// the report page should show the current month, not an error.
func resolvePeriod(period string, today time.Time) (int, time.Month) {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return today.Year(), today.Month()
	}
	return t.Year(), t.Month()
}

// TotalMembers backs the dashboard headline card.
func (e *Engine) TotalMembers() (int64, error) {
	var n int64
	if err := e.DB.Model(&models.Member{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
