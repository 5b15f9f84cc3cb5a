package start

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/stockmon/stockmonctl/pkg/monitor"
	"github.com/stockmon/stockmonctl/pkg/stockmon"
	"github.com/urfave/cli/v2"
)

func Handle(cliCtx *cli.Context) error {
	path := cliCtx.String("path")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.WithMessage(err, "failed to detect home directory")
		}
		path = filepath.Join(home, stockmon.DefaultCheckoutDirName)
	}

	err := monitor.Start(cliCtx.Context, path)
	if err != nil {
		return errors.WithMessage(err, "failed to start stock monitor")
	}

	return nil
}
