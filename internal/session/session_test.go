package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ameen01/Bad-Trade/internal/model"
	"github.com/ameen01/Bad-Trade/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingUsers struct{ err error }

func (f failingUsers) Load(context.Context) (model.Users, error) { return nil, f.err }
func (f failingUsers) Save(context.Context, model.Users) error  { return f.err }

func newManager(t *testing.T) *Manager {
	t.Helper()
	dir := t.TempDir()
	return NewManager(
		repository.NewUserRepository(repository.NewFileDocument(filepath.Join(dir, "users.json"))),
		repository.NewRecordRepository(repository.NewFileDocument(filepath.Join(dir, "data.csv"))),
	)
}

func TestManager_GetCreatesInitializedSession(t *testing.T) {
	m := newManager(t)

	sess, err := m.Get(context.Background(), "")

	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.False(t, sess.LoggedIn)
	assert.Empty(t, sess.Username)
	assert.Contains(t, sess.Users, model.AdminUsername)
	assert.True(t, sess.Data.Empty())
	assert.Equal(t, 1, m.Len())
}

func TestManager_GetReturnsSameSession(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	first, err := m.Get(ctx, "")
	require.NoError(t, err)
	first.Data = first.Data.Append(model.Record{FullName: "Jane Doe"})

	again, err := m.Get(ctx, first.ID)
	require.NoError(t, err)

	assert.Same(t, first, again)
	assert.Equal(t, 1, again.Data.Len(), "in-memory state survives between interactions")
}

func TestManager_GetUnknownIDStartsNewSession(t *testing.T) {
	m := newManager(t)

	sess, err := m.Get(context.Background(), "not-a-session")

	require.NoError(t, err)
	assert.NotEqual(t, "not-a-session", sess.ID)
}

func TestManager_GetPropagatesStoreFailure(t *testing.T) {
	ioErr := errors.New("permission denied")
	m := NewManager(failingUsers{err: ioErr}, repository.NewRecordRepository(repository.NewFileDocument(filepath.Join(t.TempDir(), "d.csv"))))

	_, err := m.Get(context.Background(), "")

	assert.ErrorIs(t, err, ioErr)
	assert.Equal(t, 0, m.Len())
}

func TestSession_Roles(t *testing.T) {
	sess := &Session{Users: model.Users{
		"admin": {FullName: model.DefaultAdminFullName},
		"jane":  {FullName: "Jane Doe"},
	}}

	assert.False(t, sess.IsAdmin())
	_, ok := sess.Account()
	assert.False(t, ok)

	sess.LoggedIn, sess.Username = true, "jane"
	assert.False(t, sess.IsAdmin())
	acc, ok := sess.Account()
	assert.True(t, ok)
	assert.Equal(t, "Jane Doe", acc.FullName)

	sess.Username = "admin"
	assert.True(t, sess.IsAdmin())
}
