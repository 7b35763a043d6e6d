package models

// Message belongs to an order. Append-only, paginated backward from newest.
type Message struct {
	BaseModel
	OrderID           string `gorm:"not null;index"`
	SenderProfileID   string `gorm:"not null"`
	ReceiverProfileID string `gorm:"not null"`
	Text              string `gorm:"not null"`

	Order    Order   `gorm:"foreignKey:OrderID"`
	Sender   Profile `gorm:"foreignKey:SenderProfileID"`
	Receiver Profile `gorm:"foreignKey:ReceiverProfileID"`
}
