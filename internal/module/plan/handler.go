package plan

import (
	"github.com/gin-gonic/gin"

	"github.com/fixstack/deviceadmin/internal/domain"
	"github.com/fixstack/deviceadmin/internal/pkg"
)

// PlanRequest represents the input for creating or updating a subscription plan.
type PlanRequest struct {
	Name         string   `json:"name" form:"name" binding:"required,min=1,max=100"`
	MonthlyPrice float64  `json:"monthly_price" form:"monthly_price" binding:"gte=0"`
	MessageQuota int      `json:"message_quota" form:"message_quota" binding:"gte=0"`
	Features     []string `json:"features" form:"features" binding:"required,min=1"`
	Active       *bool    `json:"active" form:"active"`
}

func (r PlanRequest) input() domain.PlanInput {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return domain.PlanInput{
		Name:         r.Name,
		MonthlyPrice: r.MonthlyPrice,
		MessageQuota: r.MessageQuota,
		Features:     r.Features,
		Active:       active,
	}
}

// PlanHandler handles REST API requests for the subscription plan resource.
type PlanHandler struct {
	svc domain.PlanService
}

// NewHandler creates a new PlanHandler with the given service.
func NewHandler(svc domain.PlanService) *PlanHandler {
	return &PlanHandler{svc: svc}
}

// Create handles POST /api/v1/plans.
func (h *PlanHandler) Create(c *gin.Context) {
	var req PlanRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	plan, err := h.svc.CreatePlan(c.Request.Context(), req.input())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, plan)
}

// Get handles GET /api/v1/plans/:id.
func (h *PlanHandler) Get(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	plan, err := h.svc.GetPlan(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, plan)
}

// List handles GET /api/v1/plans.
func (h *PlanHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListPlans(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Update handles PUT /api/v1/plans/:id.
func (h *PlanHandler) Update(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req PlanRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	plan, err := h.svc.UpdatePlan(c.Request.Context(), id, req.input())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, plan)
}

// Delete handles DELETE /api/v1/plans/:id.
func (h *PlanHandler) Delete(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	if err := h.svc.DeletePlan(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}
