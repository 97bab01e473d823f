// File: internal/model/consultation.go
package model

import "time"

// 諮詢請求狀態
const (
	ConsultationPending   = "pending"
	ConsultationAccepted  = "accepted"
	ConsultationRejected  = "rejected"
	ConsultationCompleted = "completed"
)

// Consultation 視訊諮詢請求；接受後才會填入房間與雙方 token
type Consultation struct {
	ID           int       `db:"id" json:"id"`
	PatientID    int       `db:"patient_id" json:"patient_id"`
	DoctorID     int       `db:"doctor_id" json:"doctor_id"`
	Status       string    `db:"status" json:"status"`
	RoomID       string    `db:"room_id" json:"room_id,omitempty"`
	DoctorToken  string    `db:"doctor_token" json:"doctor_token,omitempty"`
	PatientToken string    `db:"patient_token" json:"patient_token,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
