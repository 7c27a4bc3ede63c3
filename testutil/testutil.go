// Package testutil boots throwaway databases and process state for tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"cadrebook/auth"
	"cadrebook/config"
	"cadrebook/state"
	"cadrebook/types"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a private in-memory sqlite database with the full schema and foreign
// keys enforced. It is capped at one connection, so goroutines sharing it run their
// transactions strictly one after another. Use OpenFileDB to exercise real overlap.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())

	return openSqlite(t, dsn, 1)
}

// OpenFileDB returns a sqlite database in a temp dir with several connections. WAL and
// immediate transactions let readers overlap a writer while writers queue on the busy
// timeout.
func OpenFileDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	dsn := "file:" + path + "?_foreign_keys=1&_busy_timeout=10000&_journal_mode=WAL&_txlock=immediate"

	return openSqlite(t, dsn, 8)
}

func openSqlite(t testing.TB, dsn string, maxConns int) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(maxConns)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(types.Models()...))

	return db
}

// SetupState points the process-wide state at a fresh database and redis.
func SetupState(t testing.TB) (*gorm.DB, *miniredis.Miniredis) {
	t.Helper()

	db := OpenDB(t)
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	state.Config = &config.Config{
		Server:   config.Server{Port: ":0", Env: "test", CorsOrigin: "*"},
		Database: config.Database{Driver: "sqlite", DatabaseURL: ":memory:"},
		Auth:     config.Auth{Secret: "test-secret", TokenExpiryMinutes: 60},
	}
	state.Pool = db
	state.Redis = client
	state.Logger = zap.NewNop()
	state.Tokens = auth.NewCodec("test-secret", time.Hour)
	state.Passwords = auth.Bcrypt{Cost: bcrypt.MinCost}
	state.Revocations = auth.NewRedisRevocations(client)
	state.SetupValidator()

	return db, mr
}

// CreateUser inserts a user directly, bypassing registration.
func CreateUser(t testing.TB, db *gorm.DB, username string) *types.User {
	t.Helper()

	user := &types.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "not-a-hash",
	}
	require.NoError(t, db.Create(user).Error)

	return user
}

// CreatePost inserts a post directly with zeroed counters.
func CreatePost(t testing.TB, db *gorm.DB, ownerID uint, content string) *types.Post {
	t.Helper()

	post := &types.Post{UserID: ownerID, Content: content}
	require.NoError(t, db.Omit("User").Create(post).Error)

	return post
}
