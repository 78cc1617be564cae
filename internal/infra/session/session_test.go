package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func TestManager_IssueAndParse(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, expiresAt, err := m.Issue(42, domain.RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userID, role, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestManager_RejectsForeignSignature(t *testing.T) {
	token, _, err := NewManager("one", time.Hour).Issue(1, domain.RoleUser)
	require.NoError(t, err)

	_, _, err = NewManager("two", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsExpired(t *testing.T) {
	m := NewManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := m.Issue(1, domain.RoleUser)
	require.NoError(t, err)

	m.now = time.Now
	_, _, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsGarbage(t *testing.T) {
	_, _, err := NewManager("secret", time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
