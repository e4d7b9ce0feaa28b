package services

import (
	"context"

	"gorm.io/gorm"
)

type countRow struct {
	RefID string
	Total int64
}

// countBy returns COUNT(*) grouped by column for the given ids. Ids without
// rows are absent from the map.
func countBy(ctx context.Context, db *gorm.DB, model interface{}, column string, ids []string) (map[string]int64, error) {
	out := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []countRow
	err := db.WithContext(ctx).
		Model(model).
		Select(column+" AS ref_id, COUNT(*) AS total").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.RefID] = r.Total
	}
	return out, nil
}
