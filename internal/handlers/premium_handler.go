package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rakib404/socialink/backend/internal/models"
	"github.com/rakib404/socialink/backend/internal/repositories"
	"gorm.io/gorm"
)

// PremiumHandler handles premium subscription HTTP requests
type PremiumHandler struct {
	planRepository repositories.PremiumPlanRepository
	userRepository repositories.UserRepository
}

// NewPremiumHandler creates a new PremiumHandler
func NewPremiumHandler(planRepo repositories.PremiumPlanRepository, userRepo repositories.UserRepository) *PremiumHandler {
	return &PremiumHandler{
		planRepository: planRepo,
		userRepository: userRepo,
	}
}

// RegisterPremiumRoutes registers premium plan routes
func (h *PremiumHandler) RegisterPremiumRoutes(g *echo.Group) {
	g.POST("/premium/subscribe", h.Subscribe)
	g.GET("/premium/plan", h.GetMyPlan)
	g.GET("/premium/plans", h.GetMyPlans)
}

// Subscribe records a premium plan for the caller. The subscriber's name is
// denormalized onto the record.
func (h *PremiumHandler) Subscribe(c echo.Context) error {
	var req models.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Months == 0 {
		req.Months = 1
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	now := time.Now()
	plan := &models.PremiumPlan{
		UserID:           user.ID.Hex(),
		UserName:         user.Name,
		PlanType:         req.PlanType,
		SubscriptionDate: now,
		ExpirationDate:   now.AddDate(0, req.Months, 0),
	}
	if err := h.planRepository.CreatePlan(plan); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, plan)
}

// GetMyPlan returns the caller's most recent plan
func (h *PremiumHandler) GetMyPlan(c echo.Context) error {
	plan, err := h.planRepository.GetLatestPlanByUserID(currentUserID(c))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "No premium plan found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, plan)
}

// GetMyPlans returns the caller's plan history
func (h *PremiumHandler) GetMyPlans(c echo.Context) error {
	plans, err := h.planRepository.GetPlansByUserID(currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, plans)
}
