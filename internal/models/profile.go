package models

import (
	"gorm.io/datatypes"
)

// Profile is the public marketplace identity of a user, brand or influencer.
type Profile struct {
	BaseModel
	UserID     string `gorm:"uniqueIndex;not null"`
	Name       string `gorm:"not null"`
	About      string
	City       string
	Country    string
	Website    string
	PictureURL string
	Categories datatypes.JSON `gorm:"type:jsonb"` // ["fashion", "fitness", ...]
	Platforms  datatypes.JSON `gorm:"type:jsonb"` // [{"platform":"instagram","handle":"...","followers":12000}]

	User User `gorm:"foreignKey:UserID"`
}
