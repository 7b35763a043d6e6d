package models

// Review is one-to-one with a confirmed order. Created once, immutable.
type Review struct {
	BaseModel
	OrderID         string `gorm:"uniqueIndex;not null"`
	AuthorProfileID string `gorm:"not null;index"`
	TargetProfileID string `gorm:"not null;index"`
	Rating          int    `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	ReviewText      string

	Order  Order   `gorm:"foreignKey:OrderID"`
	Author Profile `gorm:"foreignKey:AuthorProfileID"`
	Target Profile `gorm:"foreignKey:TargetProfileID"`
}
