// Package analytics implements read-only aggregate queries for the staff
// dashboard and exports.
package analytics

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/korima-app/korima-backend/internal/adapter/postgres"
	"github.com/korima-app/korima-backend/internal/domain"
)

// Repo runs aggregate queries against PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new analytics repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Totals loads every headline counter in one round trip.
func (r *Repo) Totals(ctx context.Context) (domain.AnalyticsTotals, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var t domain.AnalyticsTotals
	err := q.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM requests),
			(SELECT count(*) FROM requests WHERE status = 'completed'),
			(SELECT count(*) FROM requests WHERE status = 'closed'),
			(SELECT count(*) FROM requests WHERE status = 'active' AND expires_at > now()),
			(SELECT count(*) FROM responses),
			(SELECT count(*) FROM responses WHERE rating = 'best'),
			(SELECT count(*) FROM comments),
			(SELECT count(*) FROM likes),
			(SELECT count(*) FROM requests WHERE urgent),
			(SELECT count(*) FROM requests WHERE urgent AND status = 'completed'),
			(SELECT count(*) FROM requests WHERE doi IS NOT NULL AND doi <> ''),
			(SELECT COALESCE(sum(points), 0) FROM users)`,
	).Scan(&t.Users, &t.Requests, &t.Completed, &t.Closed, &t.Active, &t.Responses, &t.BestAnswers,
		&t.Comments, &t.Likes, &t.Urgent, &t.UrgentResolved, &t.WithDOI, &t.PointsInCirculation)
	if err != nil {
		return domain.AnalyticsTotals{}, fmt.Errorf("analytics totals: %w", err)
	}
	return t, nil
}

// ByCategory counts requests and completed requests per category, largest
// first.
func (r *Repo) ByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
		SELECT category, count(*), count(*) FILTER (WHERE status = 'completed')
		FROM requests
		GROUP BY category
		ORDER BY count(*) DESC, category`)
	if err != nil {
		return nil, fmt.Errorf("analytics by category: %w", err)
	}
	defer rows.Close()

	out := []domain.CategoryCount{}
	for rows.Next() {
		var (
			c   domain.CategoryCount
			cat string
		)
		if err := rows.Scan(&cat, &c.Total, &c.Resolved); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		c.Category = domain.Category(cat)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category counts: %w", err)
	}
	return out, nil
}

// Levels returns how many users sit at each level, in tier order. Tiers with
// no users are included with zero.
func (r *Repo) Levels(ctx context.Context) ([]domain.LevelCount, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	levelCase := sq.Case()
	for i := len(domain.LevelTiers) - 1; i > 0; i-- {
		tier := domain.LevelTiers[i]
		levelCase = levelCase.When(sq.GtOrEq{"points": tier.MinPoints}, sq.Expr("?::text", string(tier.Level)))
	}
	levelCase = levelCase.Else(sq.Expr("?::text", string(domain.LevelTiers[0].Level)))

	query, args, err := postgres.Builder().
		Select().
		Column(sq.Alias(levelCase, "level")).
		Column("count(*)").
		From("users").
		GroupBy("1").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build level distribution: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics levels: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Level]int, len(domain.LevelTiers))
	for rows.Next() {
		var (
			level string
			n     int
		)
		if err := rows.Scan(&level, &n); err != nil {
			return nil, fmt.Errorf("scan level count: %w", err)
		}
		counts[domain.Level(level)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate level counts: %w", err)
	}

	out := make([]domain.LevelCount, 0, len(domain.LevelTiers))
	for _, tier := range domain.LevelTiers {
		out = append(out, domain.LevelCount{Level: tier.Level, Users: counts[tier.Level]})
	}
	return out, nil
}

// TopContributors ranks users by best answers received.
func (r *Repo) TopContributors(ctx context.Context, limit int) ([]domain.TopContributor, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
		SELECT u.id, u.full_name, u.points, count(x.id)
		FROM users u
		JOIN responses x ON x.contributor_id = u.id AND x.rating = 'best'
		GROUP BY u.id
		ORDER BY count(x.id) DESC, u.points DESC, u.id
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics top contributors: %w", err)
	}
	defer rows.Close()

	out := []domain.TopContributor{}
	for rows.Next() {
		var c domain.TopContributor
		if err := rows.Scan(&c.UserID, &c.FullName, &c.Points, &c.BestAnswers); err != nil {
			return nil, fmt.Errorf("scan top contributor: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top contributors: %w", err)
	}
	return out, nil
}

// Monthly counts requests per calendar month (UTC) created at or after since.
func (r *Repo) Monthly(ctx context.Context, since time.Time) ([]domain.MonthlyCount, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
		SELECT date_trunc('month', created_at AT TIME ZONE 'UTC') AS month,
		       count(*),
		       count(*) FILTER (WHERE status = 'completed')
		FROM requests
		WHERE created_at >= $1
		GROUP BY month
		ORDER BY month`, since)
	if err != nil {
		return nil, fmt.Errorf("analytics monthly: %w", err)
	}
	defer rows.Close()

	out := []domain.MonthlyCount{}
	for rows.Next() {
		var m domain.MonthlyCount
		if err := rows.Scan(&m.Month, &m.Requests, &m.Resolved); err != nil {
			return nil, fmt.Errorf("scan monthly count: %w", err)
		}
		m.Month = time.Date(m.Month.Year(), m.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly counts: %w", err)
	}
	return out, nil
}

// AdminStats loads the admin dashboard counters; "today" starts at since.
func (r *Repo) AdminStats(ctx context.Context, since time.Time) (domain.AdminStats, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.AdminStats
	err := q.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM requests),
			(SELECT count(*) FROM responses),
			(SELECT count(*) FROM comments),
			(SELECT count(*) FROM likes),
			(SELECT count(*) FROM users WHERE created_at >= $1),
			(SELECT count(*) FROM requests WHERE created_at >= $1)`, since,
	).Scan(&s.Users, &s.Requests, &s.Responses, &s.Comments, &s.Likes, &s.UsersToday, &s.RequestsToday)
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("admin stats: %w", err)
	}
	return s, nil
}
