package python

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/stockmon/stockmonctl/pkg/stockmon"
	"github.com/stockmon/stockmonctl/pkg/utils"
	"go.uber.org/multierr"
)

// DefaultDependencies is installed when the checkout ships no
// requirements file.
var DefaultDependencies = []string{"tushare", "pandas", "numpy", "matplotlib", "requests"}

var pipCandidates = [][]string{
	{"pip3", "install"},
	{"pip", "install"},
	{"python3", "-m", "pip", "install"},
	{"python", "-m", "pip", "install"},
}

// DefinePythonCommand returns the python interpreter available on the
// host, preferring python3.
func DefinePythonCommand() (string, error) {
	for _, candidate := range []string{"python3", "python"} {
		path, err := exec.LookPath(candidate)
		if err == nil {
			return path, nil
		}
	}

	return "", errors.New("python command not found")
}

// InstallDependencies installs the monitored program's libraries with
// the first working pip invocation. Failed invocations are accumulated
// and returned only when every candidate fails.
func InstallDependencies(ctx context.Context, checkoutPath string) error {
	args := installArgs(checkoutPath)

	var err error

	for _, candidate := range pipCandidates {
		if !utils.IsCommandAvailable(candidate[0]) {
			continue
		}

		cmdArgs := append(candidate[1:], args...) //nolint:gocritic
		cerr := runPip(ctx, checkoutPath, candidate[0], cmdArgs...)
		if cerr == nil {
			return nil
		}

		err = multierr.Append(err, cerr)
	}

	if err == nil {
		return errors.New("no pip command found")
	}

	return errors.WithMessage(err, "failed to install python dependencies")
}

func installArgs(checkoutPath string) []string {
	requirementsPath := filepath.Join(checkoutPath, stockmon.RequirementsFileName)
	if utils.IsFileExists(requirementsPath) {
		return []string{"-r", requirementsPath}
	}

	return DefaultDependencies
}

func runPip(ctx context.Context, dir string, command string, args ...string) error {
	_, err := utils.ExecCommandWithOutput(ctx, command, args...)
	if err != nil {
		return errors.WithMessage(err, fmt.Sprintf("%s failed in %s", command, dir))
	}

	return nil
}
