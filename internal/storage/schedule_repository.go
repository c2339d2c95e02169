package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/myturn82/dragonj/internal/storage/models"
)

// ScheduleRepository provides per-owner data access for schedule records.
// Every query and mutation is scoped by owner id; callers never see
// records across owners.
type ScheduleRepository struct {
	BaseRepository
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *DB) *ScheduleRepository {
	return &ScheduleRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// InsertMany inserts a batch of records for one owner inside a single
// transaction and returns them with assigned ids. Either all records are
// persisted or none are, so a failed insert never leaves a partial
// expansion behind.
func (r *ScheduleRepository) InsertMany(ctx context.Context, ownerID string, records []models.ScheduleRecord) ([]models.ScheduleRecord, error) {
	created := make([]models.ScheduleRecord, 0, len(records))

	err := r.Transaction(func(tx *sql.Tx) error {
		for _, rec := range records {
			rec.ID = GenerateID()
			rec.OwnerID = ownerID
			if rec.Color == "" {
				rec.Color = models.DefaultColor
			}
			rec.CreatedAt = r.Now()
			rec.UpdatedAt = rec.CreatedAt

			_, err := tx.ExecContext(ctx, `
				INSERT INTO schedule_records (
					id, owner_id, title, start_date, end_date, start_time, end_time, color, created_at, updated_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				rec.ID, rec.OwnerID, rec.Title, rec.StartDate, rec.EndDate,
				rec.StartTime, rec.EndTime, rec.Color, rec.CreatedAt, rec.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("inserting schedule record: %w", err)
			}
			created = append(created, rec)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListByOwner retrieves all schedule records for one owner in their
// natural store order (creation order). Consumers rebuild their event
// index from this full snapshot after every mutation.
func (r *ScheduleRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.ScheduleRecord, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT id, owner_id, title, start_date, end_date, start_time, end_time, color, created_at, updated_at
		FROM schedule_records
		WHERE owner_id = ?
		ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying schedule records: %w", err)
	}
	defer rows.Close()

	var records []models.ScheduleRecord
	for rows.Next() {
		var rec models.ScheduleRecord
		if err := rows.Scan(
			&rec.ID, &rec.OwnerID, &rec.Title, &rec.StartDate, &rec.EndDate,
			&rec.StartTime, &rec.EndTime, &rec.Color, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning schedule record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// GetByID retrieves one record by id and owner. Returns nil when the
// record does not exist or belongs to another owner.
func (r *ScheduleRepository) GetByID(ctx context.Context, id, ownerID string) (*models.ScheduleRecord, error) {
	rec := &models.ScheduleRecord{}

	err := r.DB().QueryRowContext(ctx, `
		SELECT id, owner_id, title, start_date, end_date, start_time, end_time, color, created_at, updated_at
		FROM schedule_records WHERE id = ? AND owner_id = ?
	`, id, ownerID).Scan(
		&rec.ID, &rec.OwnerID, &rec.Title, &rec.StartDate, &rec.EndDate,
		&rec.StartTime, &rec.EndTime, &rec.Color, &rec.CreatedAt, &rec.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying schedule record: %w", err)
	}

	return rec, nil
}

// Update overwrites the mutable fields of a record, scoped by id and owner.
func (r *ScheduleRepository) Update(ctx context.Context, rec *models.ScheduleRecord) error {
	rec.UpdatedAt = r.Now()

	result, err := r.DB().ExecContext(ctx, `
		UPDATE schedule_records SET
			title = ?, start_date = ?, end_date = ?, start_time = ?, end_time = ?, color = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?
	`,
		rec.Title, rec.StartDate, rec.EndDate, rec.StartTime, rec.EndTime,
		rec.Color, rec.UpdatedAt, rec.ID, rec.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("updating schedule record: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("schedule record not found: %s", rec.ID)
	}

	return nil
}

// Delete removes a record by id and owner.
func (r *ScheduleRepository) Delete(ctx context.Context, id, ownerID string) error {
	result, err := r.DB().ExecContext(ctx, `
		DELETE FROM schedule_records WHERE id = ? AND owner_id = ?
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting schedule record: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("schedule record not found: %s", id)
	}

	return nil
}

// CountByOwner returns the number of records for one owner.
func (r *ScheduleRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.DB().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM schedule_records WHERE owner_id = ?
	`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting schedule records: %w", err)
	}
	return count, nil
}
