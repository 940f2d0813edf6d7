package services

import (
	"encoding/json"

	"github.com/bellapacxx/bingo-engine/game"
	"github.com/bellapacxx/bingo-engine/models"
	"github.com/bellapacxx/bingo-engine/utils/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GameStore snapshots finished sessions into postgres and settles the
// winner's balance. A nil db disables persistence; every method becomes a
// no-op so the engine runs standalone.
type GameStore struct {
	db *gorm.DB
}

func NewGameStore(db *gorm.DB) *GameStore {
	return &GameStore{db: db}
}

// Enabled reports whether a database is attached.
func (s *GameStore) Enabled() bool {
	return s != nil && s.db != nil
}

// SaveFinished writes the game record, one card row per participant and the
// winner's prize transaction in a single database transaction.
func (s *GameStore) SaveFinished(snap game.Snapshot) {
	if !s.Enabled() {
		return
	}
	if snap.State != game.StateFinished {
		logger.Warnf("refusing to persist session %d in state %s", snap.ID, snap.State)
		return
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Game{}).Where("session_id = ?", snap.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil // already snapshotted
		}

		status := "finished"
		if snap.WinnerID == nil {
			status = "exhausted"
		}
		calls, _ := json.Marshal(snap.Calls)
		record := models.Game{
			SessionID:   snap.ID,
			EntryPrice:  snap.EntryPrice,
			Status:      status,
			Pool:        snap.Pool,
			Prize:       snap.Prize,
			WinnerID:    snap.WinnerID,
			WinPattern:  snap.WinPattern,
			NumbersJSON: datatypes.JSON(calls),
			StartTime:   snap.CreatedAt,
		}
		if snap.FinishedAt != nil {
			record.EndTime = *snap.FinishedAt
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		for _, p := range snap.Participants {
			numbers, _ := json.Marshal(p.Card)
			marked, _ := json.Marshal(p.Marked)
			card := models.Card{
				GameID:  record.ID,
				UserID:  p.UserID,
				Cartela: p.Cartela,
				Numbers: datatypes.JSON(numbers),
				Marked:  datatypes.JSON(marked),
			}
			if err := tx.Create(&card).Error; err != nil {
				return err
			}
			if err := s.recordResult(tx, p.UserID, snap); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Errorf("failed to persist session %d: %v", snap.ID, err)
	}
}

func (s *GameStore) recordResult(tx *gorm.DB, userID int64, snap game.Snapshot) error {
	var user models.User
	if err := tx.Where("telegram_id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil // anonymous participant, nothing to settle
		}
		return err
	}

	user.GamesPlayed++
	if snap.WinnerID != nil && *snap.WinnerID == userID {
		user.GamesWon++
		user.Balance += snap.Prize
		prizeTx := models.Transaction{
			UserID:       user.ID,
			Type:         models.PrizeTransaction,
			Amount:       snap.Prize,
			BalanceAfter: user.Balance,
		}
		if err := tx.Create(&prizeTx).Error; err != nil {
			return err
		}
	}
	return tx.Save(&user).Error
}

// DebitStake removes the entry fee from a user's balance before a join is
// forwarded to the engine. Returns false when the balance is short.
func (s *GameStore) DebitStake(userID int64, price int) bool {
	if !s.Enabled() {
		return true
	}

	ok := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("telegram_id = ?", userID).First(&user).Error; err != nil {
			return err
		}
		if user.Balance < float64(price) {
			return nil
		}
		user.Balance -= float64(price)
		stakeTx := models.Transaction{
			UserID:       user.ID,
			Type:         models.StakeTransaction,
			Amount:       float64(price),
			BalanceAfter: user.Balance,
		}
		if err := tx.Create(&stakeTx).Error; err != nil {
			return err
		}
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		ok = true
		return nil
	})
	if err != nil {
		logger.Errorf("stake debit failed for user %d: %v", userID, err)
		return false
	}
	return ok
}

// RefundStake returns the entry fee after a join the engine rejected.
func (s *GameStore) RefundStake(userID int64, price int) {
	if !s.Enabled() {
		return
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("telegram_id = ?", userID).First(&user).Error; err != nil {
			return err
		}
		user.Balance += float64(price)
		return tx.Save(&user).Error
	})
	if err != nil {
		logger.Errorf("stake refund failed for user %d: %v", userID, err)
	}
}
