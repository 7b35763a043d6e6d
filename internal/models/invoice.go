package models

// Invoice is the immutable monetary snapshot taken when an order is
// confirmed. Derived fields are computed once and never recomputed from the
// order afterwards.
type Invoice struct {
	BaseModel
	OrderID         string `gorm:"uniqueIndex;not null"`
	ProfileID       string `gorm:"not null;index"` // influencer being paid
	SaleBaseCents   int64  `gorm:"not null"`
	TaxCents        int64  `gorm:"not null"`
	TaxRateBps      int64  `gorm:"not null"`
	SaleTotalCents  int64  `gorm:"not null"`
	ServiceFeeCents int64  `gorm:"not null"`
	ServiceFeeBps   int64  `gorm:"not null"`
	NetPayoutCents  int64  `gorm:"not null"`

	Order   Order   `gorm:"foreignKey:OrderID"`
	Profile Profile `gorm:"foreignKey:ProfileID"`
}
