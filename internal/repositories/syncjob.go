package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/mp3x/internal/models"
	"github.com/desertthunder/mp3x/internal/shared"
)

// SyncJobRepository implements models.Repository[*models.SyncJob].
//
// One row is written per push/pull run so repeat syncs can report what the
// last run against a playlist did.
type SyncJobRepository struct {
	db *sql.DB
}

// NewSyncJobRepository creates a new SyncJobRepository with the given database connection
func NewSyncJobRepository(db *sql.DB) *SyncJobRepository {
	return &SyncJobRepository{db: db}
}

// Create inserts a new [models.SyncJob] into the database with generated ID and sequence
func (r *SyncJobRepository) Create(job *models.SyncJob) error {
	sequence, err := NextSequence(r.db, "sync_jobs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	job.SetID(id)

	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO sync_jobs (id, sequence, direction, playlist_id, playlist_name, total, succeeded, failed, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		string(job.Direction()),
		job.PlaylistID(),
		job.PlaylistName(),
		job.Total(),
		job.Succeeded(),
		job.Failed(),
		string(job.Status()),
		job.CreatedAt(),
		job.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert sync job: %w", err)
	}

	return nil
}

// Get retrieves a sync job by ID, excluding soft-deleted jobs
func (r *SyncJobRepository) Get(id string) (*models.SyncJob, error) {
	query := selectSyncJobs + ` WHERE id = ? AND deleted_at IS NULL`
	return r.scanOne(r.db.QueryRow(query, id))
}

// Latest retrieves the most recent sync job for a playlist name, or nil when none exists
func (r *SyncJobRepository) Latest(playlistName string) (*models.SyncJob, error) {
	query := selectSyncJobs + ` WHERE playlist_name = ? AND deleted_at IS NULL ORDER BY sequence DESC LIMIT 1`

	job, err := r.scan(r.db.QueryRow(query, playlistName))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan sync job: %w", err)
	}
	return job, nil
}

// Update modifies an existing sync job in the database
func (r *SyncJobRepository) Update(job *models.SyncJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	job.SetUpdatedAt(now)

	query := `
		UPDATE sync_jobs
		SET playlist_id = ?, total = ?, succeeded = ?, failed = ?, status = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		job.PlaylistID(),
		job.Total(),
		job.Succeeded(),
		job.Failed(),
		string(job.Status()),
		now,
		job.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update sync job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("sync job not found or already deleted: %s", job.ID())
	}

	return nil
}

// Delete soft-deletes a sync job by ID
func (r *SyncJobRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE sync_jobs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete sync job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("sync job not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all sync jobs matching the given criteria, excluding soft-deleted jobs
func (r *SyncJobRepository) List(criteria map[string]any) ([]*models.SyncJob, error) {
	query := selectSyncJobs + ` WHERE deleted_at IS NULL`

	args := []any{}

	if direction, ok := criteria["direction"].(string); ok && direction != "" {
		query += " AND direction = ?"
		args = append(args, direction)
	}

	if name, ok := criteria["playlist_name"].(string); ok && name != "" {
		query += " AND playlist_name = ?"
		args = append(args, name)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.SyncJob
	for rows.Next() {
		job, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sync job: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return jobs, nil
}

const selectSyncJobs = `
	SELECT id, sequence, direction, playlist_id, playlist_name, total, succeeded, failed, status, created_at, updated_at, deleted_at
	FROM sync_jobs
`

func (r *SyncJobRepository) scan(s trackScanner) (*models.SyncJob, error) {
	var (
		id           string
		sequence     int
		direction    string
		playlistID   string
		playlistName string
		total        int
		succeeded    int
		failed       int
		status       string
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := s.Scan(&id, &sequence, &direction, &playlistID, &playlistName, &total, &succeeded, &failed, &status, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	job := models.NewSyncJob(sequence, models.SyncDirection(direction), playlistID, playlistName)
	job.SetID(id)
	job.Complete(total, succeeded, failed)
	job.SetStatus(models.SyncStatus(status))
	job.SetCreatedAt(createdAt)
	job.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		job.SetDeletedAt(&deletedAt.Time)
	}

	return job, nil
}

// scanOne scans a single [sql.Row] into a [models.SyncJob]
func (r *SyncJobRepository) scanOne(row *sql.Row) (*models.SyncJob, error) {
	job, err := r.scan(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sync job not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan sync job: %w", err)
	}
	return job, nil
}
