package services_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"healthtracker/config"
	"healthtracker/services"
	"healthtracker/utils"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	utils.SetHashCost(bcrypt.MinCost)
}

// newTestDB opens a migrated sqlite database in a per-test temp dir.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDatabase(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "health.db"),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() { _ = config.CloseDatabase(db) })
	return db
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *recordingMailer) SendWelcome(_ context.Context, to, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func newAuthService(t *testing.T, db *gorm.DB) (*services.AuthService, *services.MemorySessionStore) {
	t.Helper()
	store := services.NewMemorySessionStore()
	return services.NewAuthService(db, store, nil, time.Hour), store
}

func registerUser(t *testing.T, auth *services.AuthService, username string) uint {
	t.Helper()
	id, err := auth.Register(context.Background(), services.RegisterInput{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	return id
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func stringPtr(v string) *string { return &v }
