package billing

import (
	"errors"
	"time"

	"github.com/leoroquedesan-droid/leo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegisterPaymentInput carries the raw registration fields after HTTP
// binding. Dates cross this boundary as YYYY-MM-DD strings so that parse
// failures have a single owner (ErrInvalidDate) instead of being guessed
// at per handler.
type RegisterPaymentInput struct {
	MemberID    uint
	PaidOn      string
	CoversUntil string
	AmountCents int64
	Memo        string
}

// RegisterPayment appends one ledger entry and advances the member's next
// due date to the paid-for period. Both writes run in one transaction:
// either the ledger row and the new due date are both visible afterwards,
// or neither is. On success the returned member already reflects the new
// due date.
//
// Two registrations racing on the same member are resolved as last commit
// wins; the expected usage is one operator per member at a time.
func (e *Engine) RegisterPayment(in RegisterPaymentInput) (*models.Member, *models.Payment, error) {
	paidOn, err := time.Parse(DateLayout, in.PaidOn)
	if err != nil {
		return nil, nil, ErrInvalidDate
	}
	coversUntil, err := time.Parse(DateLayout, in.CoversUntil)
	if err != nil {
		return nil, nil, ErrInvalidDate
	}
	if in.AmountCents < 0 {
		return nil, nil, ErrInvalidAmount
	}

	var (
		member  models.Member
		payment models.Payment
	)
	err = e.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&member, in.MemberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownMember
			}
			return err
		}

		payment = models.Payment{
			MemberID:    member.ID,
			PaidOn:      paidOn,
			CoversUntil: coversUntil,
			AmountCents: in.AmountCents,
			Memo:        in.Memo,
			ReceiptRef:  uuid.NewString(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if err := tx.Model(&member).Update("next_due_date", coversUntil).Error; err != nil {
			return err
		}
		member.NextDueDate = &coversUntil
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &member, &payment, nil
}
