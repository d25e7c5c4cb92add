package repositories

import (
	"github.com/rakib404/socialink/backend/internal/models"
	"gorm.io/gorm"
)

// HistoryRepository appends and reads per-user audit lines.
type HistoryRepository interface {
	Append(userID, action string) error
	GetByUserID(userID string, limit int) ([]models.History, error)
}

type postgresHistoryRepository struct {
	db *gorm.DB
}

// NewPostgresHistoryRepository creates a new HistoryRepository backed by
// PostgreSQL.
func NewPostgresHistoryRepository(db *gorm.DB) HistoryRepository {
	return &postgresHistoryRepository{db: db}
}

func (r *postgresHistoryRepository) Append(userID, action string) error {
	return r.db.Create(&models.History{UserID: userID, Action: action}).Error
}

func (r *postgresHistoryRepository) GetByUserID(userID string, limit int) ([]models.History, error) {
	var entries []models.History
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
