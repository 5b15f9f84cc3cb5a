package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Unit_Render(t *testing.T) {
	u := Unit{
		Description:      "Stock Monitoring Service",
		User:             "deploy",
		WorkingDirectory: "/home/deploy/stock-monitor",
		ExecStart:        "/usr/bin/python3 /home/deploy/stock-monitor/底分型微信通知.py",
	}

	result, err := u.Render()

	require.NoError(t, err)
	assert.Equal(
		t,
		"[Unit]\n"+
			"Description=Stock Monitoring Service\n"+
			"After=network.target\n"+
			"\n"+
			"[Service]\n"+
			"User=deploy\n"+
			"WorkingDirectory=/home/deploy/stock-monitor\n"+
			"ExecStart=/usr/bin/python3 /home/deploy/stock-monitor/底分型微信通知.py\n"+
			"Restart=always\n"+
			"RestartSec=10\n"+
			"\n"+
			"[Install]\n"+
			"WantedBy=multi-user.target\n",
		string(result),
	)
}

func Test_InstallUnit_overwritesPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stock-monitor.service")

	err := os.WriteFile(path, []byte("stale contents"), 0644)
	require.NoError(t, err)

	u := Unit{
		Description:      "Stock Monitoring Service",
		User:             "root",
		WorkingDirectory: "/root/stock-monitor",
		ExecStart:        "/usr/bin/python3 /root/stock-monitor/底分型微信通知.py",
	}

	err = InstallUnit(context.Background(), u, path)
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "User=root")
	assert.Contains(t, string(contents), "WorkingDirectory=/root/stock-monitor")
	assert.NotContains(t, string(contents), "stale")
}
