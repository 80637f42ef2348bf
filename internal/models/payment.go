package models

import "time"

// Payment is one immutable row of the dues ledger. CoversUntil is the
// target period the payment buys: registration copies it into the member's
// NextDueDate in the same transaction. Rows are never updated or deleted
// by the application; removing a payment must not remove the member.
type Payment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MemberID    uint      `gorm:"index;not null" json:"member_id"`
	Member      Member    `gorm:"foreignKey:MemberID" json:"member"`
	PaidOn      time.Time `gorm:"index;not null" json:"data_pagamento"`
	CoversUntil time.Time `gorm:"not null" json:"proximo_pagamento"`
	AmountCents int64     `gorm:"not null;default:0" json:"valor_cent"`
	Memo        string    `gorm:"size:255" json:"observacao"`
	ReceiptRef  string    `gorm:"size:36;uniqueIndex" json:"recibo"`

	CreatedAt time.Time `json:"created_at"`
}
