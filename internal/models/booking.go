package models

import "time"

// Booking represents a venue rental (locação de salão).
// Date is kept as the free-text string the original records carry; it is
// expected to be ISO (YYYY-MM-DD) but legacy rows may hold anything, so
// only the upcoming-window report parses it.
type Booking struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Venue         string `gorm:"size:100;not null" json:"local"`
	Date          string `gorm:"size:50;not null;index" json:"dia"`
	Time          string `gorm:"size:50" json:"hora"`
	PaymentMethod string `gorm:"size:50" json:"pagamento"`
	DepositCents  int64  `gorm:"default:0" json:"valor_entrada_cent"`
	BalanceCents  int64  `gorm:"default:0" json:"valor_segunda_parte_cent"`

	MemberID uint   `gorm:"index" json:"member_id"`
	Member   Member `gorm:"foreignKey:MemberID" json:"member"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
