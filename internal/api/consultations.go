// File: internal/api/consultations.go
package api

// swagger:model api.CreateConsultationRequest
type CreateConsultationRequest struct {
	// DoctorID 受理醫師的使用者 ID
	DoctorID int `json:"doctorId" validate:"required,min=1" example:"2"`
}
