package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// Message is one entry in a session's conversation log.
type Message struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageLog is the ordered conversation history, stored as a JSON column.
type MessageLog []Message

func (l MessageLog) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return jsonValue(l)
}

func (l *MessageLog) Scan(value interface{}) error {
	return jsonScan(value, l)
}

// CartLine is one product entry in a session's cart. At most one line exists
// per product id; repeated adds increment Quantity.
type CartLine struct {
	ProductID uint      `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// CartLines is the session cart, stored as a JSON column and always written
// back as one unit. Two concurrent mutations on the same session race:
// last write wins.
type CartLines []CartLine

func (c CartLines) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	return jsonValue(c)
}

func (c *CartLines) Scan(value interface{}) error {
	return jsonScan(value, c)
}

// TotalQuantity sums quantities across all lines.
func (c CartLines) TotalQuantity() int {
	total := 0
	for _, line := range c {
		total += line.Quantity
	}
	return total
}

// ChatSession stores one conversation: channel, linked customer, free-form
// context, message log and cart. Sessions are never hard-deleted, only
// flagged inactive.
type ChatSession struct {
	gorm.Model
	SessionID  string     `json:"session_id" gorm:"uniqueIndex;not null"`
	CustomerID *uint      `json:"customer_id" gorm:"index"` // nullable for anonymous sessions
	Channel    string     `json:"channel" gorm:"default:web"`
	Context    JSONMap    `json:"context" gorm:"type:text"`
	Messages   MessageLog `json:"messages" gorm:"type:text"`
	Cart       CartLines  `json:"cart" gorm:"type:text"`
	IsActive   bool       `json:"is_active" gorm:"default:true"`
}
