package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/fitstudio/internal/domain"
	"github.com/jackc/pgx/v5"
)

const classColumns = `id, name, starts_at, instructor, available_slots`

func (q *pgQueries) GetClass(ctx context.Context, id int64) (*domain.ClassSession, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE id=$1`
	if q.lockRows {
		query += ` FOR UPDATE`
	}

	var c domain.ClassSession
	err := q.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.StartTime, &c.Instructor, &c.AvailableSlots)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("class %d: %w", id, domain.ErrClassNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get class %d: %w", id, err)
	}
	c.StartTime = c.StartTime.UTC()
	return &c, nil
}

func (q *pgQueries) ListClassesWithCapacity(ctx context.Context) ([]domain.ClassSession, error) {
	rows, err := q.db.Query(ctx, `SELECT `+classColumns+` FROM classes WHERE available_slots > 0 ORDER BY starts_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer rows.Close()

	classes := make([]domain.ClassSession, 0)
	for rows.Next() {
		var c domain.ClassSession
		if err := rows.Scan(&c.ID, &c.Name, &c.StartTime, &c.Instructor, &c.AvailableSlots); err != nil {
			return nil, fmt.Errorf("scan class: %w", err)
		}
		c.StartTime = c.StartTime.UTC()
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

func (q *pgQueries) DecrementSlot(ctx context.Context, classID int64) error {
	res, err := q.db.Exec(ctx, `UPDATE classes SET available_slots = available_slots - 1 WHERE id=$1 AND available_slots > 0`, classID)
	if err != nil {
		return fmt.Errorf("decrement slot of class %d: %w", classID, err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("class %d: %w", classID, domain.ErrNoCapacity)
	}
	return nil
}

func (q *pgQueries) AddClass(ctx context.Context, class *domain.ClassSession) error {
	err := q.db.QueryRow(ctx, `INSERT INTO classes (name, starts_at, instructor, available_slots)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, class.Name, class.StartTime.UTC(), class.Instructor, class.AvailableSlots).
		Scan(&class.ID)
	if err != nil {
		return fmt.Errorf("insert class %q: %w", class.Name, err)
	}
	return nil
}

func (q *pgQueries) CountClasses(ctx context.Context) (int, error) {
	var n int
	if err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM classes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count classes: %w", err)
	}
	return n, nil
}
