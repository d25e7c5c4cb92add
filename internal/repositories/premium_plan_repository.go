package repositories

import (
	"github.com/rakib404/socialink/backend/internal/models"
	"gorm.io/gorm"
)

// PremiumPlanRepository defines the interface for premium plan operations
type PremiumPlanRepository interface {
	CreatePlan(plan *models.PremiumPlan) error
	GetLatestPlanByUserID(userID string) (*models.PremiumPlan, error)
	GetPlansByUserID(userID string) ([]models.PremiumPlan, error)
}

type postgresPremiumPlanRepository struct {
	db *gorm.DB
}

// NewPostgresPremiumPlanRepository creates a new PremiumPlanRepository
// backed by PostgreSQL.
func NewPostgresPremiumPlanRepository(db *gorm.DB) PremiumPlanRepository {
	return &postgresPremiumPlanRepository{db: db}
}

func (r *postgresPremiumPlanRepository) CreatePlan(plan *models.PremiumPlan) error {
	return r.db.Create(plan).Error
}

func (r *postgresPremiumPlanRepository) GetLatestPlanByUserID(userID string) (*models.PremiumPlan, error) {
	var plan models.PremiumPlan
	err := r.db.Where("user_id = ?", userID).Order("subscription_date DESC").First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *postgresPremiumPlanRepository) GetPlansByUserID(userID string) ([]models.PremiumPlan, error) {
	var plans []models.PremiumPlan
	err := r.db.Where("user_id = ?", userID).Order("subscription_date DESC").Find(&plans).Error
	return plans, err
}
