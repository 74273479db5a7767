package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// Ensure Store implements SelectionStore
var _ ports.SelectionStore = (*Store)(nil)

// LoadSelection returns the persisted item of a subject
func (s *Store) LoadSelection(ctx context.Context, subjectID string) (domain.Item, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT item_id, item_name, category, source FROM selections WHERE subject_id = ?
	`, subjectID)

	item, err := scanSelection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Item{}, false, nil
	}
	if err != nil {
		return domain.Item{}, false, fmt.Errorf("failed to load selection of %s: %w", subjectID, err)
	}
	return item, true, nil
}

// SaveSelection stores (or replaces) the item of a subject
func (s *Store) SaveSelection(ctx context.Context, subjectID string, item domain.Item) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO selections (subject_id, item_id, item_name, category, source, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(subject_id) DO UPDATE SET
			item_id = excluded.item_id,
			item_name = excluded.item_name,
			category = excluded.category,
			source = excluded.source,
			updated_at = excluded.updated_at
	`, subjectID, item.ID, item.Name, item.Category, item.Source.String(), now())
	if err != nil {
		return fmt.Errorf("failed to save selection of %s: %w", subjectID, err)
	}
	return nil
}

// ListSelections returns every persisted selection keyed by subject ID
func (s *Store) ListSelections(ctx context.Context) (map[string]domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT subject_id, item_id, item_name, category, source FROM selections
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list selections: %w", err)
	}
	defer rows.Close()

	selections := make(map[string]domain.Item)
	for rows.Next() {
		var subjectID, source string
		var item domain.Item
		if err := rows.Scan(&subjectID, &item.ID, &item.Name, &item.Category, &source); err != nil {
			return nil, fmt.Errorf("failed to scan selection: %w", err)
		}
		if item.Source, err = domain.ParseSourceTag(source); err != nil {
			return nil, fmt.Errorf("selection of %s: %w", subjectID, err)
		}
		selections[subjectID] = item
	}
	return selections, rows.Err()
}

// DeleteSelection forgets a subject. Unknown subjects are ignored.
func (s *Store) DeleteSelection(ctx context.Context, subjectID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM selections WHERE subject_id = ?`, subjectID); err != nil {
		return fmt.Errorf("failed to delete selection of %s: %w", subjectID, err)
	}
	return nil
}

func scanSelection(row *sql.Row) (domain.Item, error) {
	var item domain.Item
	var source string
	if err := row.Scan(&item.ID, &item.Name, &item.Category, &source); err != nil {
		return domain.Item{}, err
	}
	tag, err := domain.ParseSourceTag(source)
	if err != nil {
		return domain.Item{}, err
	}
	item.Source = tag
	return item, nil
}
