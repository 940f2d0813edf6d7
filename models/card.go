package models

import (
	"time"

	"gorm.io/datatypes"
)

// Card is a participant's board as it stood when the game finished.
type Card struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	GameID    uint           `gorm:"index" json:"game_id"`
	UserID    int64          `json:"user_id"`
	Cartela   int            `json:"cartela"`
	Numbers   datatypes.JSON `json:"numbers"` // 25 values, row-major
	Marked    datatypes.JSON `json:"marked"`  // marked values, sorted
	CreatedAt time.Time      `json:"created_at"`
}
