package models

import "time"

// Payout tracks money owed to an influencer for a reviewed order. Rows from
// the current month are "pending"; older unpaid rows are "available" for the
// monthly payout run.
type Payout struct {
	BaseModel
	OrderID     string `gorm:"uniqueIndex;not null"`
	InvoiceID   string `gorm:"not null"`
	ProfileID   string `gorm:"not null;index"`
	AmountCents int64  `gorm:"not null"`
	Paid        bool   `gorm:"not null;default:false"`
	PaidAt      *time.Time

	Order   Order   `gorm:"foreignKey:OrderID"`
	Invoice Invoice `gorm:"foreignKey:InvoiceID"`
	Profile Profile `gorm:"foreignKey:ProfileID"`
}
