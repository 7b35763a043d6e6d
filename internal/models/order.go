package models

import (
	"time"

	"gorm.io/datatypes"
)

// Order tracks an engagement between a buyer (brand) and an influencer from
// awaiting through delivery, confirmation and review. All monetary amounts
// are cents.
type Order struct {
	BaseModel
	BuyerProfileID      string  `gorm:"not null;index"`
	InfluencerProfileID string  `gorm:"not null;index"`
	JobID               *string `gorm:"index"`

	Platform              string
	ContentQuantities     datatypes.JSON `gorm:"type:jsonb"`
	BasePriceCents        int64          `gorm:"not null"`
	TaxCents              int64          `gorm:"not null"`
	TotalCents            int64          `gorm:"not null"`
	Details               string
	OrderStatusID         OrderStatus `gorm:"not null;default:1"`
	RequestedDeliveryDate *time.Time
	DateItWasDelivered    *time.Time

	Buyer      Profile `gorm:"foreignKey:BuyerProfileID"`
	Influencer Profile `gorm:"foreignKey:InfluencerProfileID"`
	Job        *Job    `gorm:"foreignKey:JobID"`
}
