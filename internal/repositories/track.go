package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"crate/internal/models"
	"crate/internal/shared"
)

// trackColumns is the column list shared by every track SELECT so scan
// order stays consistent.
const trackColumns = `id, sequence, path, title, artist, album, album_artist,
	track_number, disc_number, duration, isrc, hash, norm_title, norm_artist,
	created_at, updated_at, deleted_at`

// stableOrder keeps query results deterministic for a given library state.
// Matching relies on this for reproducible tie-breaks.
const stableOrder = "ORDER BY norm_artist, norm_title, sequence"

// TrackRepository implements models.Repository[*models.LibraryTrack] over the
// sqlite library index. It is the read side consumed by the matching engine
// and the write side driven by the library scanner.
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new TrackRepository with the given database connection
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Create inserts a new [models.LibraryTrack] into the database with generated ID and sequence
func (r *TrackRepository) Create(track *models.LibraryTrack) error {
	sequence, err := NextSequence(r.db, "tracks")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	track.SetID(id)

	if err := track.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO tracks (id, sequence, path, title, artist, album, album_artist,
			track_number, disc_number, duration, isrc, hash, norm_title, norm_artist,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	meta := track.Meta()
	_, err = r.db.Exec(query,
		id,
		sequence,
		meta.Path,
		meta.Title,
		meta.Artist,
		meta.Album,
		meta.AlbumArtist,
		meta.TrackNumber,
		meta.DiscNumber,
		meta.Duration,
		meta.ISRC,
		meta.Hash,
		track.NormTitle(),
		track.NormArtist(),
		track.CreatedAt(),
		track.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert track: %w", err)
	}

	return nil
}

// Get retrieves a track by ID, excluding soft-deleted tracks
func (r *TrackRepository) Get(id string) (*models.LibraryTrack, error) {
	query := fmt.Sprintf(`SELECT %s FROM tracks WHERE id = ? AND deleted_at IS NULL`, trackColumns)
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByPath retrieves a track by its file path
func (r *TrackRepository) GetByPath(path string) (*models.LibraryTrack, error) {
	query := fmt.Sprintf(`SELECT %s FROM tracks WHERE path = ? AND deleted_at IS NULL`, trackColumns)
	return r.scanOne(r.db.QueryRow(query, path))
}

// GetByISRC retrieves a track by ISRC code
func (r *TrackRepository) GetByISRC(isrc string) (*models.LibraryTrack, error) {
	query := fmt.Sprintf(`SELECT %s FROM tracks WHERE isrc = ? AND isrc != '' AND deleted_at IS NULL %s LIMIT 1`, trackColumns, stableOrder)
	return r.scanOne(r.db.QueryRow(query, isrc))
}

// Update modifies an existing track in the database
func (r *TrackRepository) Update(track *models.LibraryTrack) error {
	if err := track.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	track.SetUpdatedAt(now)

	query := `
		UPDATE tracks
		SET path = ?, title = ?, artist = ?, album = ?, album_artist = ?,
			track_number = ?, disc_number = ?, duration = ?, isrc = ?, hash = ?,
			norm_title = ?, norm_artist = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	meta := track.Meta()
	result, err := r.db.Exec(query,
		meta.Path,
		meta.Title,
		meta.Artist,
		meta.Album,
		meta.AlbumArtist,
		meta.TrackNumber,
		meta.DiscNumber,
		meta.Duration,
		meta.ISRC,
		meta.Hash,
		track.NormTitle(),
		track.NormArtist(),
		now,
		track.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update track: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("track not found or already deleted: %s", track.ID())
	}

	return nil
}

// Delete soft-deletes a track by ID
func (r *TrackRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE tracks
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete track: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("track not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves tracks matching the given criteria (exact column matches only)
func (r *TrackRepository) List(criteria map[string]any) ([]*models.LibraryTrack, error) {
	query := fmt.Sprintf(`SELECT %s FROM tracks WHERE deleted_at IS NULL`, trackColumns)
	args := []any{}

	for column, value := range criteria {
		switch column {
		case "artist", "album", "title", "path", "isrc":
			query += fmt.Sprintf(" AND %s = ?", column)
			args = append(args, value)
		default:
			return nil, fmt.Errorf("unsupported list criteria: %s", column)
		}
	}

	query += " " + stableOrder

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// All retrieves every track in the library index in stable order.
// This is the full-scan fallback for candidate retrieval.
func (r *TrackRepository) All() ([]*models.LibraryTrack, error) {
	query := fmt.Sprintf(`SELECT %s FROM tracks WHERE deleted_at IS NULL %s`, trackColumns, stableOrder)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// QueryCandidates retrieves tracks whose normalized title or artist contains
// any of the given tokens, in stable order. An empty token list yields no rows.
func (r *TrackRepository) QueryCandidates(tokens []string) ([]*models.LibraryTrack, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	conditions := make([]string, 0, len(tokens))
	args := make([]any, 0, len(tokens)*2)
	for _, token := range tokens {
		pattern := "%" + escapeLike(token) + "%"
		conditions = append(conditions, "(norm_title LIKE ? ESCAPE '\\' OR norm_artist LIKE ? ESCAPE '\\')")
		args = append(args, pattern, pattern)
	}

	query := fmt.Sprintf(`SELECT %s FROM tracks WHERE deleted_at IS NULL AND (%s) %s`,
		trackColumns, strings.Join(conditions, " OR "), stableOrder)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// Count returns the number of live tracks in the index.
func (r *TrackRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM tracks WHERE deleted_at IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return n, nil
}

// escapeLike escapes LIKE metacharacters in a token.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *TrackRepository) scan(s rowScanner) (*models.LibraryTrack, error) {
	var (
		id         string
		sequence   int
		meta       models.TrackMeta
		normTitle  string
		normArtist string
		createdAt  time.Time
		updatedAt  time.Time
		deletedAt  sql.NullTime
	)

	err := s.Scan(
		&id,
		&sequence,
		&meta.Path,
		&meta.Title,
		&meta.Artist,
		&meta.Album,
		&meta.AlbumArtist,
		&meta.TrackNumber,
		&meta.DiscNumber,
		&meta.Duration,
		&meta.ISRC,
		&meta.Hash,
		&normTitle,
		&normArtist,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}

	return models.RestoreLibraryTrack(id, sequence, meta, normTitle, normArtist, createdAt, updatedAt, deleted), nil
}

func (r *TrackRepository) scanOne(row *sql.Row) (*models.LibraryTrack, error) {
	track, err := r.scan(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w", shared.ErrTrackNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}
	return track, nil
}

func (r *TrackRepository) scanAll(rows *sql.Rows) ([]*models.LibraryTrack, error) {
	var tracks []*models.LibraryTrack
	for rows.Next() {
		track, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, track)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return tracks, nil
}
