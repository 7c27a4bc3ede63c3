package database

import (
	"fmt"

	"gorm.io/gorm"
)

// counterSource describes one denormalized counter and the rows it counts.
type counterSource struct {
	table     string
	column    string
	edgeTable string
	edgeKey   string
}

var counterSources = []counterSource{
	{"users", "followers_count", "follows", "followed_id"},
	{"users", "following_count", "follows", "follower_id"},
	{"posts", "likes_count", "likes", "post_id"},
	{"posts", "comments_count", "comments", "post_id"},
}

func (c counterSource) actual() string {
	return fmt.Sprintf("(SELECT COUNT(*) FROM %s WHERE %s.%s = %s.id)", c.edgeTable, c.edgeTable, c.edgeKey, c.table)
}

// CounterDrift is a stored counter that disagrees with its source rows.
type CounterDrift struct {
	Table    string
	Column   string
	ID       uint
	Stored   int64
	Computed int64
}

// CheckCounters recomputes every counter from its edge rows and reports the mismatches.
// It writes nothing.
func CheckCounters(db *gorm.DB) ([]CounterDrift, error) {
	var drift []CounterDrift

	for _, c := range counterSources {
		var rows []struct {
			ID       uint
			Stored   int64
			Computed int64
		}

		err := db.Raw(fmt.Sprintf(
			"SELECT id, %s AS stored, %s AS computed FROM %s WHERE %s <> %s ORDER BY id",
			c.column, c.actual(), c.table, c.column, c.actual(),
		)).Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("check %s.%s: %w", c.table, c.column, err)
		}

		for _, r := range rows {
			drift = append(drift, CounterDrift{
				Table:    c.table,
				Column:   c.column,
				ID:       r.ID,
				Stored:   r.Stored,
				Computed: r.Computed,
			})
		}
	}

	return drift, nil
}

// RepairCounters rewrites every drifted counter from its edge rows in one transaction
// and returns how many rows were corrected.
func RepairCounters(db *gorm.DB) (int64, error) {
	var fixed int64

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, c := range counterSources {
			res := tx.Exec(fmt.Sprintf(
				"UPDATE %s SET %s = %s WHERE %s <> %s",
				c.table, c.column, c.actual(), c.column, c.actual(),
			))
			if res.Error != nil {
				return fmt.Errorf("repair %s.%s: %w", c.table, c.column, res.Error)
			}

			fixed += res.RowsAffected
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return fixed, nil
}
