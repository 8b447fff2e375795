package sqlite

import (
	"fmt"
	"time"

	"github.com/vertextoedge/bunkr-fetch/internal/domain"
	"github.com/vertextoedge/bunkr-fetch/internal/port"
)

// Ensure Store implements port.HistoryRepository
var _ port.HistoryRepository = (*Store)(nil)

// Record inserts one per-item download outcome
func (s *Store) Record(rec *domain.DownloadRecord) error {
	result, err := s.db.Exec(`
		INSERT INTO download_history (batch_id, page_url, filename, status, error)
		VALUES (?, ?, ?, ?, ?)`,
		rec.BatchID, rec.PageURL, rec.Filename, rec.Status, rec.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history record: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		rec.ID = id
	}
	return nil
}

// RecentRecords returns the most recent history rows, newest first
func (s *Store) RecentRecords(limit int) ([]*domain.DownloadRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, batch_id, page_url, filename, status, error, created_at
		FROM download_history
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []*domain.DownloadRecord
	for rows.Next() {
		rec := &domain.DownloadRecord{}
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.BatchID, &rec.PageURL, &rec.Filename, &rec.Status, &rec.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		// CURRENT_TIMESTAMP stores UTC text
		rec.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// BatchCounts returns per-status counts for one batch
func (s *Store) BatchCounts(batchID string) (map[string]int, error) {
	rows, err := s.db.Query(`
		SELECT status, COUNT(*)
		FROM download_history
		WHERE batch_id = ?
		GROUP BY status`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query batch counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
