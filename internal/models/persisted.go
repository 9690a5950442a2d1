package models

import (
	"fmt"
	"time"
)

// PersistedTrack is a database-backed track linking a Spotify track to a local file.
//
// Tracks are cached during push and pull so repeat runs can skip search calls
// via ISRC or service ID lookups.
type PersistedTrack struct {
	id        string
	sequence  int
	service   string
	serviceID string
	path      string
	dto       Track
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewPersistedTrack creates a PersistedTrack from a service identity and a track DTO.
func NewPersistedTrack(sequence int, service, serviceID string, dto Track) *PersistedTrack {
	now := time.Now()
	return &PersistedTrack{
		sequence:  sequence,
		service:   service,
		serviceID: serviceID,
		dto:       dto,
		createdAt: now,
		updatedAt: now,
	}
}

func (t *PersistedTrack) ID() string            { return t.id }
func (t *PersistedTrack) Sequence() int         { return t.sequence }
func (t *PersistedTrack) Service() string       { return t.service }
func (t *PersistedTrack) ServiceID() string     { return t.serviceID }
func (t *PersistedTrack) Title() string         { return t.dto.Title }
func (t *PersistedTrack) Artist() string        { return t.dto.Artist }
func (t *PersistedTrack) Album() string         { return t.dto.Album }
func (t *PersistedTrack) Duration() int         { return t.dto.Duration }
func (t *PersistedTrack) ISRC() string          { return t.dto.ISRC }
func (t *PersistedTrack) Path() string          { return t.path }
func (t *PersistedTrack) Dto() Track            { return t.dto }
func (t *PersistedTrack) CreatedAt() time.Time  { return t.createdAt }
func (t *PersistedTrack) UpdatedAt() time.Time  { return t.updatedAt }
func (t *PersistedTrack) DeletedAt() *time.Time { return t.deletedAt }

func (t *PersistedTrack) SetID(id string)            { t.id = id }
func (t *PersistedTrack) SetPath(path string)        { t.path = path }
func (t *PersistedTrack) SetUpdatedAt(ts time.Time)  { t.updatedAt = ts }
func (t *PersistedTrack) SetDeletedAt(ts *time.Time) { t.deletedAt = ts }
func (t *PersistedTrack) SetCreatedAt(ts time.Time)  { t.createdAt = ts }

// Validate checks the track has a service identity and a title.
func (t *PersistedTrack) Validate() error {
	if t.service == "" {
		return fmt.Errorf("track service is required")
	}
	if t.serviceID == "" {
		return fmt.Errorf("track service_id is required")
	}
	if t.dto.Title == "" {
		return fmt.Errorf("track title is required")
	}
	return nil
}

// SyncDirection identifies whether a job pushed local files to Spotify or pulled a playlist down.
type SyncDirection string

const (
	SyncPush SyncDirection = "push"
	SyncPull SyncDirection = "pull"
)

// SyncStatus is the terminal state of a sync job.
type SyncStatus string

const (
	SyncCompleted SyncStatus = "completed"
	SyncPartial   SyncStatus = "partial"
	SyncFailed    SyncStatus = "failed"
)

// SyncJob records a single push or pull run against a playlist.
type SyncJob struct {
	id           string
	sequence     int
	direction    SyncDirection
	playlistID   string
	playlistName string
	total        int
	succeeded    int
	failed       int
	status       SyncStatus
	createdAt    time.Time
	updatedAt    time.Time
	deletedAt    *time.Time
}

// NewSyncJob creates a SyncJob for the given direction and playlist.
func NewSyncJob(sequence int, direction SyncDirection, playlistID, playlistName string) *SyncJob {
	now := time.Now()
	return &SyncJob{
		sequence:     sequence,
		direction:    direction,
		playlistID:   playlistID,
		playlistName: playlistName,
		status:       SyncFailed,
		createdAt:    now,
		updatedAt:    now,
	}
}

func (j *SyncJob) ID() string               { return j.id }
func (j *SyncJob) Sequence() int            { return j.sequence }
func (j *SyncJob) Direction() SyncDirection { return j.direction }
func (j *SyncJob) PlaylistID() string       { return j.playlistID }
func (j *SyncJob) PlaylistName() string     { return j.playlistName }
func (j *SyncJob) Total() int               { return j.total }
func (j *SyncJob) Succeeded() int           { return j.succeeded }
func (j *SyncJob) Failed() int              { return j.failed }
func (j *SyncJob) Status() SyncStatus       { return j.status }
func (j *SyncJob) CreatedAt() time.Time     { return j.createdAt }
func (j *SyncJob) UpdatedAt() time.Time     { return j.updatedAt }
func (j *SyncJob) DeletedAt() *time.Time    { return j.deletedAt }

func (j *SyncJob) SetID(id string)            { j.id = id }
func (j *SyncJob) SetStatus(s SyncStatus)     { j.status = s }
func (j *SyncJob) SetPlaylistID(id string)    { j.playlistID = id }
func (j *SyncJob) SetUpdatedAt(ts time.Time)  { j.updatedAt = ts }
func (j *SyncJob) SetCreatedAt(ts time.Time)  { j.createdAt = ts }
func (j *SyncJob) SetDeletedAt(ts *time.Time) { j.deletedAt = ts }

// Complete records the run's counters and derives the terminal status.
func (j *SyncJob) Complete(total, succeeded, failed int) {
	j.total = total
	j.succeeded = succeeded
	j.failed = failed

	switch {
	case total > 0 && succeeded == 0:
		j.status = SyncFailed
	case failed > 0:
		j.status = SyncPartial
	default:
		j.status = SyncCompleted
	}
}

// Validate checks the job has a direction and playlist name.
func (j *SyncJob) Validate() error {
	if j.direction != SyncPush && j.direction != SyncPull {
		return fmt.Errorf("invalid sync direction: %s", j.direction)
	}
	if j.playlistName == "" {
		return fmt.Errorf("playlist name is required")
	}
	return nil
}
