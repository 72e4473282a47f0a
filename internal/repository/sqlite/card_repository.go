package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/prepdeck/prepdeck/internal/logger"
	"github.com/prepdeck/prepdeck/internal/models"
	"github.com/prepdeck/prepdeck/internal/repository"
)

// cardRepository implements repository.CardRepository against one of the two
// card tables. The SM-2 state columns are identical; only the table and the
// item foreign-key column differ.
type cardRepository struct {
	db      *sql.DB
	table   string
	itemCol string
	logName string
}

// NewProblemCardRepository returns the card repository for coding problems.
func NewProblemCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db, table: "problem_review_cards", itemCol: "problem_id", logName: "problem_card_repo"}
}

// NewRoadmapCardRepository returns the card repository for roadmap steps.
func NewRoadmapCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db, table: "roadmap_review_cards", itemCol: "step_id", logName: "roadmap_card_repo"}
}

func (r *cardRepository) columns() string {
	return fmt.Sprintf("id, user_id, %s, ease_factor, interval_days, repetitions, next_review_date, last_reviewed_at, last_quality, created_at", r.itemCol)
}

func (r *cardRepository) scan(row interface{ Scan(...any) error }) (*models.ReviewCard, error) {
	var c models.ReviewCard
	var lastReviewed sql.NullTime
	var lastQuality sql.NullInt64
	err := row.Scan(&c.ID, &c.UserID, &c.ItemID, &c.EaseFactor, &c.IntervalDays, &c.Repetitions,
		&c.NextReviewDate, &lastReviewed, &lastQuality, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if lastReviewed.Valid {
		t := lastReviewed.Time
		c.LastReviewedAt = &t
	}
	if lastQuality.Valid {
		q := int(lastQuality.Int64)
		c.LastQuality = &q
	}
	return &c, nil
}

func (r *cardRepository) CreateIfAbsent(ctx context.Context, card models.ReviewCard) (*models.ReviewCard, bool, error) {
	log := logger.FromContext(ctx).WithPrefix(r.logName)
	log.Debug("creating card if absent: user_id=%d, %s=%d", card.UserID, r.itemCol, card.ItemID)

	// The UNIQUE(user_id, item) constraint carries the idempotence; a losing
	// concurrent insert simply becomes a no-op here.
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`
INSERT INTO %s (user_id, %s, ease_factor, interval_days, repetitions, next_review_date)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, %s) DO NOTHING
`, r.table, r.itemCol, r.itemCol),
		card.UserID, card.ItemID, card.EaseFactor, card.IntervalDays, card.Repetitions, card.NextReviewDate)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, false, err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, false, err
	}

	stored, err := r.getByItem(ctx, card.UserID, card.ItemID)
	if err != nil {
		log.Error("failed to load card after insert: %v", err)
		return nil, false, err
	}
	if inserted > 0 {
		log.Debug("card created: id=%d", stored.ID)
	} else {
		log.Debug("card already exists: id=%d", stored.ID)
	}
	return stored, inserted > 0, nil
}

func (r *cardRepository) getByItem(ctx context.Context, userID, itemID int64) (*models.ReviewCard, error) {
	row := r.db.QueryRowContext(ctx, fmt.Sprintf(`
SELECT %s FROM %s WHERE user_id = ? AND %s = ?
`, r.columns(), r.table, r.itemCol), userID, itemID)
	return r.scan(row)
}

func (r *cardRepository) Get(ctx context.Context, id, userID int64) (*models.ReviewCard, error) {
	log := logger.FromContext(ctx).WithPrefix(r.logName)
	log.Debug("getting card: id=%d, user_id=%d", id, userID)

	// Keyed by (id, user_id) so a card belonging to another user is
	// indistinguishable from a missing one.
	row := r.db.QueryRowContext(ctx, fmt.Sprintf(`
SELECT %s FROM %s WHERE id = ? AND user_id = ?
`, r.columns(), r.table), id, userID)
	card, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return card, nil
}

func (r *cardRepository) Update(ctx context.Context, c models.ReviewCard) error {
	log := logger.FromContext(ctx).WithPrefix(r.logName)
	log.Debug("updating card: id=%d, interval=%d, ease=%.2f", c.ID, c.IntervalDays, c.EaseFactor)

	_, err := r.db.ExecContext(ctx, fmt.Sprintf(`
UPDATE %s
SET ease_factor = ?, interval_days = ?, repetitions = ?, next_review_date = ?, last_reviewed_at = ?, last_quality = ?
WHERE id = ?
`, r.table), c.EaseFactor, c.IntervalDays, c.Repetitions, c.NextReviewDate, c.LastReviewedAt, c.LastQuality, c.ID)
	if err != nil {
		log.Error("failed to update card: %v", err)
	}
	return err
}

func (r *cardRepository) ListDue(ctx context.Context, userID int64, today models.Date, limit int) ([]models.ReviewCard, error) {
	log := logger.FromContext(ctx).WithPrefix(r.logName)
	log.Debug("listing due cards: user_id=%d, today=%s, limit=%d", userID, today, limit)

	query := sqlBuilder.
		Select("id", "user_id", r.itemCol, "ease_factor", "interval_days", "repetitions",
			"next_review_date", "last_reviewed_at", "last_quality", "created_at").
		From(r.table).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.LtOrEq{"next_review_date": today.String()}).
		OrderBy("next_review_date ASC, id ASC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build due query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query due cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.ReviewCard
	for rows.Next() {
		card, err := r.scan(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, *card)
	}
	log.Debug("found %d due cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) Stats(ctx context.Context, userID int64, today models.Date) (*models.ReviewStats, error) {
	log := logger.FromContext(ctx).WithPrefix(r.logName)
	log.Debug("fetching review stats: user_id=%d, today=%s", userID, today)

	var stats models.ReviewStats
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`
SELECT
    COUNT(*) AS total_cards,
    COUNT(CASE WHEN next_review_date <= ? THEN 1 END) AS due_today,
    COUNT(CASE WHEN interval_days > 21 THEN 1 END) AS mastered,
    COUNT(CASE WHEN next_review_date > ? AND next_review_date <= ? THEN 1 END) AS upcoming_week
FROM %s
WHERE user_id = ?
`, r.table), today.String(), today.String(), today.AddDays(7).String(), userID).Scan(
		&stats.TotalCards, &stats.DueToday, &stats.Mastered, &stats.UpcomingWeek)
	if err != nil {
		log.Error("failed to get review stats: %v", err)
		return nil, err
	}
	return &stats, nil
}
