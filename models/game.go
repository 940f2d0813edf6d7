package models

import (
	"time"

	"gorm.io/datatypes"
)

// Game is the durable record of one finished session. The live session is
// in-memory only; this row is written once when it finishes.
type Game struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SessionID   uint64         `gorm:"uniqueIndex" json:"session_id"`
	EntryPrice  int            `json:"entry_price"` // 10, 20, 50, 100
	Status      string         `json:"status"`      // finished | exhausted
	Pool        float64        `json:"pool"`
	Prize       float64        `json:"prize"`
	WinnerID    *int64         `json:"winner_id"`
	WinPattern  string         `json:"win_pattern"`
	NumbersJSON datatypes.JSON `json:"numbers_drawn"` // call history as JSON array
	StartTime   time.Time      `json:"start_time"`
	EndTime     time.Time      `json:"end_time"`
	CreatedAt   time.Time      `json:"created_at"`
}
