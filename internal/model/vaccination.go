// File: internal/model/vaccination.go
package model

import "time"

// 疫苗提醒狀態
const (
	VaccinationUpcoming  = "upcoming"
	VaccinationCompleted = "completed"
	VaccinationOverdue   = "overdue"
)

// 接種年齡層
var VaccinationAgeGroups = []string{
	"birth", "2-months", "4-months", "6-months", "12-months",
	"15-months", "18-months", "24-months", "4-6-years",
	"11-12-years", "pregnancy", "adult",
}

// 疫苗分類
var VaccinationCategories = []string{
	"routine", "catch-up", "high-risk", "travel", "pregnancy",
}

// Vaccination 使用者的疫苗接種提醒紀錄
type Vaccination struct {
	ID                 int        `db:"id" json:"id"`
	UserID             int        `db:"user_id" json:"user_id"`
	Name               string     `db:"name" json:"name"`
	DueDate            time.Time  `db:"due_date" json:"due_date"`
	Status             string     `db:"status" json:"status"`
	Notes              string     `db:"notes" json:"notes,omitempty"`
	AgeGroup           string     `db:"age_group" json:"age_group"`
	Category           string     `db:"category" json:"category"`
	CompletedDate      *time.Time `db:"completed_date" json:"completed_date,omitempty"`
	ReminderEnabled    bool       `db:"reminder_enabled" json:"reminder_enabled"`
	DaysBeforeReminder int        `db:"days_before_reminder" json:"days_before_reminder"`
	LastReminderSent   *time.Time `db:"last_reminder_sent" json:"last_reminder_sent,omitempty"`
	ProviderName       string     `db:"provider_name" json:"provider_name,omitempty"`
	ProviderContact    string     `db:"provider_contact" json:"provider_contact,omitempty"`
	BatchNumber        string     `db:"batch_number" json:"batch_number,omitempty"`
	Manufacturer       string     `db:"manufacturer" json:"manufacturer,omitempty"`
	SideEffects        string     `db:"side_effects" json:"side_effects,omitempty"`
	NextDueDate        *time.Time `db:"next_due_date" json:"next_due_date,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// IsOverdue 回報 upcoming 紀錄是否已逾期
func (v *Vaccination) IsOverdue(now time.Time) bool {
	return v.Status == VaccinationUpcoming && v.DueDate.Before(now)
}

// Normalize 套用儲存前的狀態規則：逾期的 upcoming 轉為 overdue，
// completed 而無完成日期時補上 now。
func (v *Vaccination) Normalize(now time.Time) {
	if v.IsOverdue(now) {
		v.Status = VaccinationOverdue
	}
	if v.Status == VaccinationCompleted && v.CompletedDate == nil {
		t := now
		v.CompletedDate = &t
	}
}
