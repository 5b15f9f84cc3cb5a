package status

import (
	"github.com/pkg/errors"
	"github.com/stockmon/stockmonctl/pkg/monitor"
	"github.com/urfave/cli/v2"
)

func Handle(cliCtx *cli.Context) error {
	err := monitor.Status(cliCtx.Context)
	if err != nil {
		return errors.WithMessage(err, "failed to get stock monitor status")
	}

	return nil
}
