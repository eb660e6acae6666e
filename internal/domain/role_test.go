package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"provider": RoleProvider,
		"Provider": RoleProvider,
		" PARENT ": RoleParent,
		"parent":   RoleParent,
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			got, err := ParseRole(in)
			require.NoError(t, err)
			require.Equal(t, want, got)
			require.True(t, got.Valid())
		})
	}

	t.Run("should reject unknown roles", func(t *testing.T) {
		got, err := ParseRole("ministryadmin")
		require.ErrorIs(t, err, ErrUnknownRole)
		require.False(t, got.Valid())
	})
}

func TestChatMessage_SentBy(t *testing.T) {
	req := require.New(t)
	msg := ChatMessage{SenderRoleIsProvider: true}
	req.True(msg.SentBy(RoleProvider))
	req.False(msg.SentBy(RoleParent))
	req.False(msg.IsRead())
}
