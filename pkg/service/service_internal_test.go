package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeSystemctl(t *testing.T, script string) {
	t.Helper()

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "systemctl"), []byte(script), 0755)
	require.NoError(t, err)

	t.Setenv("PATH", dir)
}

func Test_Systemd_Status_printsReport(t *testing.T) {
	fakeSystemctl(t, "#!/bin/sh\necho 'stock-monitor.service - active (running)'\n")

	r, w, err := os.Pipe()
	require.NoError(t, err)
	origStdout := os.Stdout
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = origStdout })

	statusErr := NewSystemd().Status(context.Background(), "stock-monitor")

	require.NoError(t, w.Close())
	os.Stdout = origStdout
	out, err := io.ReadAll(r)
	require.NoError(t, err)

	require.NoError(t, statusErr)
	assert.Contains(t, string(out), "active (running)")
}

func Test_Systemd_Status_exitCodes(t *testing.T) {
	tests := []struct {
		name   string
		script string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "inactive",
			script: "#!/bin/sh\nexit 3\n",
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.ErrorIs(t, err, ErrInactiveService)
			},
		},
		{
			name:   "not_found",
			script: "#!/bin/sh\nexit 4\n",
			check: func(t *testing.T, err error) {
				t.Helper()
				notFoundErr := &NotFoundError{}
				require.True(t, errors.As(err, &notFoundErr))
				assert.Equal(t, "stock-monitor", notFoundErr.ServiceName)
			},
		},
		{
			name:   "other_exit_code",
			script: "#!/bin/sh\nexit 1\n",
			check: func(t *testing.T, err error) {
				t.Helper()
				require.Error(t, err)
				assert.Contains(t, err.Error(), "exit code 1")
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fakeSystemctl(t, test.script)

			err := NewSystemd().Status(context.Background(), "stock-monitor")

			test.check(t, err)
		})
	}
}
