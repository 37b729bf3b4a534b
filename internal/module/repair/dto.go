package repair

import "github.com/fixstack/deviceadmin/internal/domain"

// ServiceRequest is the payload for creating or updating a repair service.
type ServiceRequest struct {
	Name             string  `json:"name" binding:"required,max=150"`
	Category         string  `json:"category" binding:"required,max=100"`
	Price            float64 `json:"price" binding:"gte=0"`
	EstimatedMinutes int     `json:"estimated_minutes" binding:"gte=0"`
	Active           *bool   `json:"active"`
}

func (r ServiceRequest) input() domain.RepairServiceInput {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return domain.RepairServiceInput{
		Name:             r.Name,
		Category:         r.Category,
		Price:            r.Price,
		EstimatedMinutes: r.EstimatedMinutes,
		Active:           active,
	}
}
