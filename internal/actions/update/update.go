package update

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/stockmon/stockmonctl/pkg/monitor"
	"github.com/stockmon/stockmonctl/pkg/python"
	"github.com/stockmon/stockmonctl/pkg/stockmon"
	"github.com/stockmon/stockmonctl/pkg/utils"
	"github.com/urfave/cli/v2"
)

// Handle pulls the monitored program's checkout, refreshes its python
// dependencies and restarts the service.
func Handle(cliCtx *cli.Context) error {
	fmt.Println("Update stock monitor")

	path := cliCtx.String("path")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.WithMessage(err, "failed to detect home directory")
		}
		path = filepath.Join(home, stockmon.DefaultCheckoutDirName)
	}

	if !utils.IsFileExists(path) {
		return errors.Errorf("checkout %s not found, run install first", path)
	}

	fmt.Println("Pulling source ...")
	err := utils.ExecCommand("git", "-C", path, "pull")
	if err != nil {
		return errors.WithMessage(err, "failed to pull source")
	}

	fmt.Println("Installing python dependencies ...")
	if err = python.InstallDependencies(cliCtx.Context, path); err != nil {
		fmt.Println("Warning: failed to install python dependencies:", err)
	}

	fmt.Println("Restarting service ...")
	err = monitor.Restart(cliCtx.Context, path)
	if err != nil {
		return errors.WithMessage(err, "failed to restart service")
	}

	fmt.Println("Stock monitor updated")

	return nil
}
