// File: internal/api/vaccinations.go
package api

import "time"

// swagger:model api.CreateVaccinationRequest
type CreateVaccinationRequest struct {
	Name     string    `json:"name" validate:"required" example:"MMR dose 1"`
	DueDate  time.Time `json:"due_date" validate:"required"`
	Status   string    `json:"status" validate:"omitempty,oneof=upcoming completed overdue"`
	Notes    string    `json:"notes"`
	AgeGroup string    `json:"age_group" validate:"required,oneof=birth 2-months 4-months 6-months 12-months 15-months 18-months 24-months 4-6-years 11-12-years pregnancy adult"`
	Category string    `json:"category" validate:"omitempty,oneof=routine catch-up high-risk travel pregnancy"`

	CompletedDate      *time.Time `json:"completed_date"`
	ReminderEnabled    *bool      `json:"reminder_enabled"`
	DaysBeforeReminder *int       `json:"days_before_reminder" validate:"omitempty,min=0"`

	ProviderName    string     `json:"provider_name"`
	ProviderContact string     `json:"provider_contact"`
	BatchNumber     string     `json:"batch_number"`
	Manufacturer    string     `json:"manufacturer"`
	SideEffects     string     `json:"side_effects"`
	NextDueDate     *time.Time `json:"next_due_date"`
}

// swagger:model api.UpdateVaccinationRequest
type UpdateVaccinationRequest struct {
	Name     string     `json:"name" validate:"omitempty" example:"MMR dose 1"`
	DueDate  *time.Time `json:"due_date"`
	Status   string     `json:"status" validate:"omitempty,oneof=upcoming completed overdue"`
	Notes    *string    `json:"notes"`
	AgeGroup string     `json:"age_group" validate:"omitempty,oneof=birth 2-months 4-months 6-months 12-months 15-months 18-months 24-months 4-6-years 11-12-years pregnancy adult"`
	Category string     `json:"category" validate:"omitempty,oneof=routine catch-up high-risk travel pregnancy"`

	CompletedDate      *time.Time `json:"completed_date"`
	ReminderEnabled    *bool      `json:"reminder_enabled"`
	DaysBeforeReminder *int       `json:"days_before_reminder" validate:"omitempty,min=0"`

	ProviderName    *string    `json:"provider_name"`
	ProviderContact *string    `json:"provider_contact"`
	BatchNumber     *string    `json:"batch_number"`
	Manufacturer    *string    `json:"manufacturer"`
	SideEffects     *string    `json:"side_effects"`
	NextDueDate     *time.Time `json:"next_due_date"`
}
