package packagemanager

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePackageManager struct {
	installErr error
	updateErr  error

	installCalls [][]string
	updateCalls  int
}

func (f *fakePackageManager) Install(_ context.Context, packs ...string) error {
	f.installCalls = append(f.installCalls, packs)

	return f.installErr
}

func (f *fakePackageManager) CheckForUpdates(_ context.Context) error {
	f.updateCalls++

	return f.updateErr
}

func Test_fallback_Install_primarySucceeds(t *testing.T) {
	base := &fakePackageManager{}
	secondary := &fakePackageManager{}
	pm := newFallbackPackageManager(base, secondary)

	err := pm.Install(context.Background(), "git", "python3")

	require.NoError(t, err)
	assert.Len(t, base.installCalls, 1)
	assert.Empty(t, secondary.installCalls)
}

func Test_fallback_Install_primaryFails(t *testing.T) {
	base := &fakePackageManager{installErr: errors.New("apt broken")}
	secondary := &fakePackageManager{}
	pm := newFallbackPackageManager(base, secondary)

	err := pm.Install(context.Background(), "git")

	require.NoError(t, err)
	assert.Len(t, base.installCalls, 1)
	assert.Len(t, secondary.installCalls, 1)
	assert.Equal(t, []string{"git"}, secondary.installCalls[0])
}

func Test_fallback_Install_bothFail(t *testing.T) {
	base := &fakePackageManager{installErr: errors.New("apt broken")}
	secondary := &fakePackageManager{installErr: errors.New("yum broken")}
	pm := newFallbackPackageManager(base, secondary)

	err := pm.Install(context.Background(), "git")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "apt broken")
	assert.Contains(t, err.Error(), "yum broken")
}

func Test_fallback_CheckForUpdates_primaryFails(t *testing.T) {
	base := &fakePackageManager{updateErr: errors.New("no network")}
	secondary := &fakePackageManager{}
	pm := newFallbackPackageManager(base, secondary)

	err := pm.CheckForUpdates(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, base.updateCalls)
	assert.Equal(t, 1, secondary.updateCalls)
}
