// Package database implements the social graph on top of gorm: accounts, follows,
// posts, comments and likes, and the read models assembled from them.
//
// Every function takes the *gorm.DB to run against, usually state.Pool scoped to the
// request context. Mutations open their own transaction on it. Denormalized counters
// (followers_count, following_count, likes_count, comments_count) change only in the
// same transaction as the edge row that they count.
package database

import (
	"fmt"
	"strings"

	"cadrebook/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PasswordHasher is the one-way password function used by Register and Login.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// TokenIssuer signs access tokens for a user.
type TokenIssuer interface {
	Issue(userID uint) (string, error)
}

// Migrate creates or updates every table, index and foreign key.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(types.Models()...)
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func findUserByUsername(db *gorm.DB, username string) (*types.User, error) {
	var user types.User
	err := db.Where("username = ?", normalizeUsername(username)).Limit(1).Find(&user).Error
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}

	if user.ID == 0 {
		return nil, ErrUserNotFound
	}

	return &user, nil
}

func findUserByID(db *gorm.DB, id uint) (*types.User, error) {
	var user types.User
	err := db.Where("id = ?", id).Limit(1).Find(&user).Error
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}

	if user.ID == 0 {
		return nil, ErrUserNotFound
	}

	return &user, nil
}

// UserExists is used by the authorizer to reject tokens of deleted accounts.
func UserExists(db *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := db.Model(&types.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// insertEdge inserts an edge row, doing nothing if the unique pair already exists.
// It reports whether a row was written.
func insertEdge(tx *gorm.DB, edge any) (bool, error) {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(edge)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}

// increment adds one to a counter column of the row with the given id.
func increment(tx *gorm.DB, model any, id uint, column string) (bool, error) {
	res := tx.Model(model).Where("id = ?", id).UpdateColumn(column, gorm.Expr(column+" + 1"))
	return res.RowsAffected == 1, res.Error
}

// decrement subtracts one from a counter column, never going below zero. It reports
// false without error when the row no longer exists.
func decrement(tx *gorm.DB, model any, id uint, column string) (bool, error) {
	res := tx.Model(model).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr("CASE WHEN "+column+" > 0 THEN "+column+" - 1 ELSE 0 END"))
	return res.RowsAffected == 1, res.Error
}

func clampPage(skip, limit, maxLimit int) (int, int) {
	if skip < 0 {
		skip = 0
	}

	if limit <= 0 {
		limit = 20
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	return skip, limit
}
