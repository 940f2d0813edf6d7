package controllers

import (
	"net/http"

	"github.com/bellapacxx/bingo-engine/config"
	"github.com/bellapacxx/bingo-engine/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type transferRequest struct {
	TelegramID int64   `json:"telegram_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
}

// Deposit credits a user's balance and records the transaction.
func Deposit(c *gin.Context) {
	transfer(c, models.DepositTransaction)
}

// Withdraw debits a user's balance and records the transaction.
func Withdraw(c *gin.Context) {
	transfer(c, models.WithdrawTransaction)
}

func transfer(c *gin.Context, kind models.TransactionType) {
	if config.DB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "transaction store not configured"})
		return
	}

	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var record models.Transaction
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("telegram_id = ?", req.TelegramID).First(&user).Error; err != nil {
			return err
		}

		if kind == models.WithdrawTransaction {
			if user.Balance < req.Amount {
				return &insufficientBalance{}
			}
			user.Balance -= req.Amount
		} else {
			user.Balance += req.Amount
		}

		record = models.Transaction{
			UserID:       user.ID,
			Type:         kind,
			Amount:       req.Amount,
			BalanceAfter: user.Balance,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return tx.Save(&user).Error
	})

	switch {
	case err == nil:
		c.JSON(http.StatusCreated, record)
	case err == gorm.ErrRecordNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		if _, ok := err.(*insufficientBalance); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transaction"})
	}
}

type insufficientBalance struct{}

func (e *insufficientBalance) Error() string { return "insufficient balance" }
