package tracking

import (
	"context"
	"database/sql"

	"github.com/iambatul/sishairven/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db *db.DB
}

func NewService(db *db.DB) *Service {
	return &Service{db: db}
}

// SaveClick persists an affiliate click and returns its tracking ID.
func (s *Service) SaveClick(ctx context.Context, c Click) (string, error) {
	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO affiliate_clicks
			(id, asin, product_name, category, country, timezone,
			 source, campaign, estimated_commission, ip_hash, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, id, c.ASIN, c.ProductName, c.Category, c.Country, c.Timezone,
		nullable(c.Source), nullable(c.Campaign), c.EstimatedCommission,
		c.IPHash, c.UserAgent)

	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) ListClicks(ctx context.Context, limit, offset int) ([]Click, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, asin, product_name, category, country, timezone,
		       COALESCE(source, ''), COALESCE(campaign, ''),
		       COALESCE(estimated_commission, 0), clicked_at
		FROM affiliate_clicks
		ORDER BY clicked_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clicks := []Click{}
	for rows.Next() {
		var c Click
		if err := rows.Scan(
			&c.ID, &c.ASIN, &c.ProductName, &c.Category, &c.Country, &c.Timezone,
			&c.Source, &c.Campaign, &c.EstimatedCommission, &c.ClickedAt,
		); err != nil {
			return nil, err
		}
		clicks = append(clicks, c)
	}
	return clicks, rows.Err()
}

func (s *Service) ClickStats(ctx context.Context) (ClickStats, error) {
	var st ClickStats

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE clicked_at > NOW() - INTERVAL '24 hours'),
		       COALESCE(SUM(estimated_commission), 0)
		FROM affiliate_clicks
	`).Scan(&st.Total, &st.Last24h, &st.TotalCommission)
	if err != nil {
		return ClickStats{}, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT asin FROM affiliate_clicks
		GROUP BY asin ORDER BY COUNT(*) DESC LIMIT 1
	`).Scan(&st.TopASIN)
	if err != nil && err != sql.ErrNoRows {
		return ClickStats{}, err
	}

	return st, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
