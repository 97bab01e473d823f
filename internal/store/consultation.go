// File: internal/store/consultation.go
package store

import (
	"context"
	"errors"
	"fmt"

	"mamacare/internal/database"
	"mamacare/internal/model"

	"github.com/jackc/pgx/v5"
)

const consultationColumns = `id, patient_id, doctor_id, status, room_id,
	 doctor_token, patient_token, created_at, updated_at`

func scanConsultation(row pgx.Row) (*model.Consultation, error) {
	c := &model.Consultation{}
	err := row.Scan(
		&c.ID,
		&c.PatientID,
		&c.DoctorID,
		&c.Status,
		&c.RoomID,
		&c.DoctorToken,
		&c.PatientToken,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func CreateConsultation(ctx context.Context, db database.DB, c *model.Consultation) (*model.Consultation, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO consultations (patient_id, doctor_id, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.PatientID, c.DoctorID, c.Status,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateConsultation: %w", err)
	}
	return c, nil
}

func GetConsultationByID(ctx context.Context, db database.DB, id int) (*model.Consultation, error) {
	row := db.QueryRow(ctx,
		`SELECT `+consultationColumns+` FROM consultations WHERE id = $1`,
		id,
	)
	c, err := scanConsultation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetConsultationByID: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("GetConsultationByID: %w", err)
	}
	return c, nil
}

// ListConsultationsForUser 列出使用者參與（病患或醫師身分）的諮詢
func ListConsultationsForUser(ctx context.Context, db database.DB, userID int) ([]model.Consultation, error) {
	rows, err := db.Query(ctx,
		`SELECT `+consultationColumns+` FROM consultations
		 WHERE patient_id = $1 OR doctor_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListConsultationsForUser: %w", err)
	}
	defer rows.Close()

	var out []model.Consultation
	for rows.Next() {
		c := model.Consultation{}
		if err := rows.Scan(
			&c.ID,
			&c.PatientID,
			&c.DoctorID,
			&c.Status,
			&c.RoomID,
			&c.DoctorToken,
			&c.PatientToken,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListConsultationsForUser: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListConsultationsForUser: %w", err)
	}
	return out, nil
}

// UpdateConsultationStatus 更新狀態；接受時一併寫入房間與雙方 token
func UpdateConsultationStatus(ctx context.Context, db database.DB, c *model.Consultation) error {
	tag, err := db.Exec(ctx,
		`UPDATE consultations
		 SET status = $1, room_id = $2, doctor_token = $3, patient_token = $4, updated_at = now()
		 WHERE id = $5`,
		c.Status, c.RoomID, c.DoctorToken, c.PatientToken, c.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateConsultationStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateConsultationStatus: %w", ErrNotFound)
	}
	return nil
}
