package newsletter

import (
	"context"
	"regexp"

	"github.com/iambatul/sishairven/internal/db"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidEmail(email string) bool {
	return len(email) <= 254 && emailPattern.MatchString(email)
}

type Service struct {
	db *db.DB
}

func NewService(db *db.DB) *Service {
	return &Service{db: db}
}

// Subscribe upserts a subscriber by email. Re-subscribing refreshes
// the name without duplicating the row, so the endpoint stays
// idempotent for impatient double-clickers.
func (s *Service) Subscribe(ctx context.Context, email, name, ipHash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscribers (id, email, name, ip_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ((LOWER(email))) DO UPDATE
		SET name = EXCLUDED.name
	`, uuid.NewString(), email, name, ipHash)
	return err
}

func (s *Service) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscribers`).Scan(&n)
	return n, err
}
