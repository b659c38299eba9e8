package lockfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionguard/stackctl/internal/core/domain"
)

func TestAcquire_SecondAcquireFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deploy.lock")

	first, err := Acquire(path)
	require.NoError(t, err)

	_, err = Acquire(path)
	assert.ErrorIs(t, err, domain.ErrLockHeld)

	require.NoError(t, first.Release())
}

func TestAcquire_ReacquireAfterRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deploy.lock")

	first, err := Acquire(path)
	require.NoError(t, err)
	require.NoError(t, first.Release())

	second, err := Acquire(path)
	require.NoError(t, err)
	require.NoError(t, second.Release())
}

func TestAcquire_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "deploy.lock")

	l, err := Acquire(path)
	require.NoError(t, err)
	require.NoError(t, l.Release())
}
