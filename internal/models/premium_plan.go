package models

import "time"

// Premium plan tiers.
const (
	PlanBusiness = "business"
	PlanVIP      = "vip"
	PlanSuperVIP = "superVIP"
)

// PremiumPlan represents a premium subscription record (PostgreSQL).
// UserName is denormalized at subscription time.
type PremiumPlan struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           string    `json:"user_id" gorm:"size:64;index"`
	UserName         string    `json:"user_name"`
	PlanType         string    `json:"plan_type" gorm:"size:20"`
	SubscriptionDate time.Time `json:"subscription_date"`
	ExpirationDate   time.Time `json:"expiration_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SubscribeRequest defines the request body for buying a premium plan.
type SubscribeRequest struct {
	PlanType string `json:"plan_type" validate:"required,oneof=business vip superVIP"`
	Months   int    `json:"months" validate:"omitempty,min=1,max=12"`
}
