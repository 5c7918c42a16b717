package domain

import (
	"time"
)

type AvailabilityRule struct {
	ID           int64     `json:"id"`
	DayOfWeek    Weekday   `json:"day_of_week"`
	StartTime    Clock     `json:"start_time" swaggertype:"string" example:"09:00"`
	EndTime      Clock     `json:"end_time" swaggertype:"string" example:"12:00"`
	SlotDuration int       `json:"slot_duration"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateAvailabilityRuleDTO struct {
	DayOfWeek    *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime    string `json:"start_time" binding:"required" example:"09:00"`
	EndTime      string `json:"end_time" binding:"required" example:"12:00"`
	SlotDuration int    `json:"slot_duration" binding:"required" example:"30"`
	IsActive     *bool  `json:"is_active"`
}

type ToggleAvailabilityRuleDTO struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type AvailabilityRuleFilter struct {
	DayOfWeek  *Weekday `json:"day_of_week"`
	ActiveOnly bool     `json:"active_only"`
}
