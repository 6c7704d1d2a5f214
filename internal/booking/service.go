package booking

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/iambatul/sishairven/internal/db"

	"github.com/google/uuid"
)

var ErrInvalidStatus = errors.New("invalid appointment status")

type Service struct {
	db *db.DB
}

func NewService(db *db.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Save(ctx context.Context, a Appointment) (string, error) {
	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO appointments
			(id, name, phone, email, service, date, message, status, ip_hash, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, id, a.Name, a.Phone, a.Email, a.Service, a.Date, a.Message, StatusPending, a.IPHash, a.UserAgent)

	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) List(ctx context.Context, limit, offset int, status string) ([]Appointment, error) {
	query := `
		SELECT id, name, phone, email, service,
		       to_char(date, 'YYYY-MM-DD'), message, status, created_at
		FROM appointments
	`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	n := len(args)
	query += ` LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := []Appointment{}
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Phone, &a.Email, &a.Service,
			&a.Date, &a.Message, &a.Status, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'confirmed'),
		       COUNT(*) FILTER (WHERE status = 'cancelled'),
		       COUNT(*) FILTER (WHERE status = 'completed')
		FROM appointments
	`).Scan(&st.Total, &st.Pending, &st.Confirmed, &st.Cancelled, &st.Completed)

	return st, err
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
	default:
		return ErrInvalidStatus
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE appointments SET status = $1 WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
