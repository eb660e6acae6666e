package chat

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iyunix/go-workshopchat/internal/database"
	"github.com/iyunix/go-workshopchat/internal/domain"
	chatrepo "github.com/iyunix/go-workshopchat/internal/repository/chat"
	msgrepo "github.com/iyunix/go-workshopchat/internal/repository/message"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	db       *gorm.DB
	clock    *fakeClock
	config   *Config
	rooms    chatrepo.ChatRoomRepository
	messages msgrepo.MessageRepository
	registry *RoomRegistry
	store    *MessageStore
	tracker  *ReadStateTracker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.Open(database.Options{
		Driver:       database.DriverSQLite,
		DSN:          filepath.Join(t.TempDir(), "chat.db"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, true))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	clock := newFakeClock()
	config := DefaultConfig()
	config.Clock = clock.Now

	rooms := chatrepo.NewChatRoomRepository(db, nopLogger{})
	messages := msgrepo.NewMessageRepository(db, nopLogger{})

	return &fixture{
		db:       db,
		clock:    clock,
		config:   config,
		rooms:    rooms,
		messages: messages,
		registry: NewRoomRegistry(rooms, config, nopLogger{}),
		store:    NewMessageStore(messages, config, nopLogger{}),
		tracker:  NewReadStateTracker(messages, config, nopLogger{}),
	}
}

// seedWorkshop registers a workshop owned by a fresh provider and returns
// both IDs.
func (f *fixture) seedWorkshop(t *testing.T) (workshopID, providerID uuid.UUID) {
	t.Helper()
	provider := domain.Provider{ID: uuid.New(), UserID: uuid.NewString()}
	require.NoError(t, f.db.Create(&provider).Error)
	workshop := domain.Workshop{ID: uuid.New(), ProviderID: provider.ID, Title: "Robotics"}
	require.NoError(t, f.db.Create(&workshop).Error)
	return workshop.ID, provider.ID
}
