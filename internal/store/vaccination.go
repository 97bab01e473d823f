// File: internal/store/vaccination.go
package store

import (
	"context"
	"errors"
	"fmt"

	"mamacare/internal/database"
	"mamacare/internal/model"

	"github.com/jackc/pgx/v5"
)

const vaccinationColumns = `id, user_id, name, due_date, status, notes, age_group, category,
	 completed_date, reminder_enabled, days_before_reminder, last_reminder_sent,
	 provider_name, provider_contact, batch_number, manufacturer, side_effects,
	 next_due_date, created_at, updated_at`

func scanVaccination(row pgx.Row) (*model.Vaccination, error) {
	v := &model.Vaccination{}
	err := row.Scan(
		&v.ID,
		&v.UserID,
		&v.Name,
		&v.DueDate,
		&v.Status,
		&v.Notes,
		&v.AgeGroup,
		&v.Category,
		&v.CompletedDate,
		&v.ReminderEnabled,
		&v.DaysBeforeReminder,
		&v.LastReminderSent,
		&v.ProviderName,
		&v.ProviderContact,
		&v.BatchNumber,
		&v.Manufacturer,
		&v.SideEffects,
		&v.NextDueDate,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func CreateVaccination(ctx context.Context, db database.DB, v *model.Vaccination) (*model.Vaccination, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO vaccinations (user_id, name, due_date, status, notes, age_group, category,
		   completed_date, reminder_enabled, days_before_reminder,
		   provider_name, provider_contact, batch_number, manufacturer, side_effects, next_due_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING id, created_at, updated_at`,
		v.UserID, v.Name, v.DueDate, v.Status, v.Notes, v.AgeGroup, v.Category,
		v.CompletedDate, v.ReminderEnabled, v.DaysBeforeReminder,
		v.ProviderName, v.ProviderContact, v.BatchNumber, v.Manufacturer, v.SideEffects, v.NextDueDate,
	)
	if err := row.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateVaccination: %w", err)
	}
	return v, nil
}

func GetVaccinationByID(ctx context.Context, db database.DB, id int) (*model.Vaccination, error) {
	row := db.QueryRow(ctx,
		`SELECT `+vaccinationColumns+` FROM vaccinations WHERE id = $1`,
		id,
	)
	v, err := scanVaccination(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetVaccinationByID: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("GetVaccinationByID: %w", err)
	}
	return v, nil
}

// ListVaccinations 列出某使用者的所有提醒，依到期日排序
func ListVaccinations(ctx context.Context, db database.DB, userID int) ([]model.Vaccination, error) {
	rows, err := db.Query(ctx,
		`SELECT `+vaccinationColumns+` FROM vaccinations
		 WHERE user_id = $1
		 ORDER BY due_date ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListVaccinations: %w", err)
	}
	defer rows.Close()

	var out []model.Vaccination
	for rows.Next() {
		v := model.Vaccination{}
		if err := rows.Scan(
			&v.ID,
			&v.UserID,
			&v.Name,
			&v.DueDate,
			&v.Status,
			&v.Notes,
			&v.AgeGroup,
			&v.Category,
			&v.CompletedDate,
			&v.ReminderEnabled,
			&v.DaysBeforeReminder,
			&v.LastReminderSent,
			&v.ProviderName,
			&v.ProviderContact,
			&v.BatchNumber,
			&v.Manufacturer,
			&v.SideEffects,
			&v.NextDueDate,
			&v.CreatedAt,
			&v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListVaccinations: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListVaccinations: %w", err)
	}
	return out, nil
}

func UpdateVaccination(ctx context.Context, db database.DB, v *model.Vaccination) error {
	tag, err := db.Exec(ctx,
		`UPDATE vaccinations
		 SET name = $1, due_date = $2, status = $3, notes = $4, age_group = $5,
		     category = $6, completed_date = $7, reminder_enabled = $8,
		     days_before_reminder = $9, provider_name = $10, provider_contact = $11,
		     batch_number = $12, manufacturer = $13, side_effects = $14,
		     next_due_date = $15, updated_at = now()
		 WHERE id = $16`,
		v.Name, v.DueDate, v.Status, v.Notes, v.AgeGroup,
		v.Category, v.CompletedDate, v.ReminderEnabled,
		v.DaysBeforeReminder, v.ProviderName, v.ProviderContact,
		v.BatchNumber, v.Manufacturer, v.SideEffects,
		v.NextDueDate, v.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateVaccination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateVaccination: %w", ErrNotFound)
	}
	return nil
}

func DeleteVaccination(ctx context.Context, db database.DB, id int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM vaccinations WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("DeleteVaccination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteVaccination: %w", ErrNotFound)
	}
	return nil
}

// MarkOverdueVaccinations 將某使用者到期未完成的 upcoming 全部轉為 overdue，
// 回傳更新筆數。由 worker pool 在請求路徑外執行。
func MarkOverdueVaccinations(ctx context.Context, db database.DB, userID int) (int, error) {
	tag, err := db.Exec(ctx,
		`UPDATE vaccinations
		 SET status = 'overdue', updated_at = now()
		 WHERE user_id = $1 AND status = 'upcoming' AND due_date < now()`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("MarkOverdueVaccinations: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
