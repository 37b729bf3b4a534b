package domain

import "context"

// Plan represents a chatbot subscription plan.
type Plan struct {
	BaseModel
	Name         string  `gorm:"size:100;uniqueIndex;not null" json:"name"`
	MonthlyPrice float64 `gorm:"not null" json:"monthly_price"`
	MessageQuota int     `gorm:"not null" json:"message_quota"`
	Features     string  `gorm:"size:1000" json:"features"`
	Active       bool    `gorm:"default:true" json:"active"`
}

// PlanRepository defines the data access interface for subscription plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Plan], error)
	Update(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, id uint) error
}

// PlanInput carries the writable fields of a subscription plan.
type PlanInput struct {
	Name         string
	MonthlyPrice float64
	MessageQuota int
	Features     []string
	Active       bool
}

// PlanService defines the business logic interface for subscription plans.
type PlanService interface {
	CreatePlan(ctx context.Context, in PlanInput) (*Plan, error)
	GetPlan(ctx context.Context, id uint) (*Plan, error)
	ListPlans(ctx context.Context, req PageRequest) (*PageResult[Plan], error)
	UpdatePlan(ctx context.Context, id uint, in PlanInput) (*Plan, error)
	DeletePlan(ctx context.Context, id uint) error
}
