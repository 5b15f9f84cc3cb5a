package python

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stockmon/stockmonctl/pkg/stockmon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_installArgs_withRequirementsFile(t *testing.T) {
	dir := t.TempDir()
	requirementsPath := filepath.Join(dir, stockmon.RequirementsFileName)
	err := os.WriteFile(requirementsPath, []byte("tushare\npandas\n"), 0644)
	require.NoError(t, err)

	args := installArgs(dir)

	assert.Equal(t, []string{"-r", requirementsPath}, args)
}

func Test_installArgs_withoutRequirementsFile(t *testing.T) {
	args := installArgs(t.TempDir())

	assert.Equal(t, DefaultDependencies, args)
}
