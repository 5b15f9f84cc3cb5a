package install

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingService struct {
	calls []string
}

func (s *recordingService) Start(_ context.Context, _ string) error {
	s.calls = append(s.calls, "start")

	return nil
}

func (s *recordingService) Stop(_ context.Context, _ string) error {
	s.calls = append(s.calls, "stop")

	return nil
}

func (s *recordingService) Restart(_ context.Context, _ string) error {
	s.calls = append(s.calls, "restart")

	return nil
}

func (s *recordingService) Status(_ context.Context, _ string) error {
	s.calls = append(s.calls, "status")

	return nil
}

func (s *recordingService) Enable(_ context.Context, _ string) error {
	s.calls = append(s.calls, "enable")

	return nil
}

func (s *recordingService) DaemonReload(_ context.Context) error {
	s.calls = append(s.calls, "daemon-reload")

	return nil
}

func Test_registerService(t *testing.T) {
	unitPath := filepath.Join(t.TempDir(), "stock-monitor.service")
	svc := &recordingService{}
	state := installState{
		Path:      "/home/deploy/stock-monitor",
		User:      "deploy",
		ExecStart: "/usr/bin/python3 /home/deploy/stock-monitor/底分型微信通知.py",
	}

	err := registerService(context.Background(), svc, state, unitPath)
	require.NoError(t, err)

	// Reload must come before enable, enable before start.
	assert.Equal(t, []string{"daemon-reload", "enable", "start"}, svc.calls)

	contents, err := os.ReadFile(unitPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "User=deploy")
	assert.Contains(t, string(contents), "WorkingDirectory=/home/deploy/stock-monitor")
	assert.Contains(
		t,
		string(contents),
		"ExecStart=/usr/bin/python3 /home/deploy/stock-monitor/底分型微信通知.py",
	)
}
