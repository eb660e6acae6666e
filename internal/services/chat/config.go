// File: internal/services/chat/config.go
package chat

import (
	"fmt"
	"time"
)

const (
	// MutabilityWindow is how long after creation a message may still be
	// edited or deleted by its sender.
	MutabilityWindow = 10 * time.Minute
	// MaxTextLength bounds message text, counted in characters.
	MaxTextLength = 256

	DefaultPageSize = 20
	MaxPageSize     = 100
	// CreateRoomAttempts caps the insert/re-read loop of GetOrCreate.
	CreateRoomAttempts = 3
)

type Config struct {
	MutabilityWindow   time.Duration
	MaxTextLength      int
	DefaultPageSize    int
	MaxPageSize        int
	CreateRoomAttempts int

	// Clock returns the current time; always normalised to UTC by callers.
	Clock func() time.Time
}

func (c *Config) Validate() error {
	if c.MutabilityWindow <= 0 {
		return fmt.Errorf("mutability_window must be positive")
	}
	if c.MaxTextLength <= 0 {
		return fmt.Errorf("max_text_length must be positive")
	}
	if c.DefaultPageSize <= 0 {
		return fmt.Errorf("default_page_size must be positive")
	}
	if c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("max_page_size cannot be lower than default_page_size")
	}
	if c.CreateRoomAttempts < 1 {
		return fmt.Errorf("create_room_attempts must be at least 1")
	}
	if c.Clock == nil {
		return fmt.Errorf("clock is required")
	}
	return nil
}

func (c *Config) now() time.Time {
	return c.Clock().UTC()
}

func DefaultConfig() *Config {
	return &Config{
		MutabilityWindow:   MutabilityWindow,
		MaxTextLength:      MaxTextLength,
		DefaultPageSize:    DefaultPageSize,
		MaxPageSize:        MaxPageSize,
		CreateRoomAttempts: CreateRoomAttempts,
		Clock:              time.Now,
	}
}
