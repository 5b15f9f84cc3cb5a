package app

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/stockmon/stockmonctl/internal/actions/install"
	"github.com/stockmon/stockmonctl/internal/actions/selfupdate"
	"github.com/stockmon/stockmonctl/internal/actions/sendlogs"
	"github.com/stockmon/stockmonctl/internal/actions/service/restart"
	"github.com/stockmon/stockmonctl/internal/actions/service/start"
	"github.com/stockmon/stockmonctl/internal/actions/service/status"
	"github.com/stockmon/stockmonctl/internal/actions/service/stop"
	"github.com/stockmon/stockmonctl/internal/actions/update"
	contextInternal "github.com/stockmon/stockmonctl/internal/context"
	"github.com/stockmon/stockmonctl/pkg/stockmon"
	"github.com/urfave/cli/v2"
)

//nolint:funlen
func Run(args []string) {
	if _, err := os.Stat(stockmon.DefaultLogDirPath); errors.Is(err, fs.ErrNotExist) {
		err := os.Mkdir(stockmon.DefaultLogDirPath, 0755)
		if err != nil {
			log.Fatalf("Error creating log directory: %s", err)
		}
	}
	logname := fmt.Sprintf("%s.log", time.Now().Format("2006-01-02_15-04-05"))
	logFile, err := os.OpenFile(
		stockmon.DefaultLogDirPath+logname,
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}

	log.SetOutput(logFile)

	app := &cli.App{
		Name:    "stockmonctl",
		Usage:   "Stock Monitor Control",
		Version: stockmon.Version,
		Before: func(context *cli.Context) error {
			var err error
			context.Context, err = contextInternal.SetOSContext(context.Context)
			if err != nil {
				return err
			}

			return nil
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "non-interactive",
				Value: false,
			},
		},
		Commands: []*cli.Command{
			{
				Name:        "install",
				Aliases:     []string{"i"},
				Description: "Provision the host and register the stock monitor service",
				Usage:       "Install stock monitor",
				Action:      install.Handle,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Checkout directory",
					},
					&cli.StringFlag{
						Name:  "branch",
						Usage: "Git branch to deploy",
					},
					&cli.StringFlag{
						Name:  "token",
						Usage: "Tushare API token to seed into the config",
					},
					&cli.StringFlag{
						Name:  "exec",
						Usage: "Override the service command line",
					},
					&cli.BoolFlag{
						Name:  "skip-editor",
						Usage: "Do not open an editor after seeding the config",
					},
				},
			},
			{
				Name:        "update",
				Aliases:     []string{"u"},
				Description: "Pull the checkout, refresh dependencies and restart the service",
				Usage:       "Update stock monitor",
				Action:      update.Handle,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Checkout directory",
					},
				},
			},
			{
				Name:        "service",
				Aliases:     []string{"s"},
				Description: "Service actions",
				Usage:       "Service actions",
				Subcommands: []*cli.Command{
					{
						Name:    "start",
						Usage:   "Start stock monitor",
						Action:  start.Handle,
						Flags:   pathFlag(),
						Aliases: []string{},
					},
					{
						Name:   "stop",
						Usage:  "Stop stock monitor",
						Action: stop.Handle,
					},
					{
						Name:   "restart",
						Usage:  "Restart stock monitor",
						Action: restart.Handle,
						Flags:  pathFlag(),
					},
					{
						Name:   "status",
						Usage:  "Stock monitor status",
						Action: status.Handle,
					},
				},
			},
			{
				Name:        "send-logs",
				Description: "Collect logs and config into an archive for diagnostics",
				Usage:       "Collect diagnostics bundle",
				Action:      sendlogs.Handle,
				Flags:       pathFlag(),
			},
			{
				Name:        "self-update",
				Description: "Update stockmonctl to the latest release",
				Usage:       "Update stockmonctl",
				Action:      selfupdate.Handle,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name: "force",
					},
				},
			},
		},
	}

	err = app.Run(args)
	if err != nil {
		fmt.Println(err)
		fmt.Println("See details in log file: " + stockmon.DefaultLogDirPath + logname)
		log.Fatal(err)
	}
}

func pathFlag() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "path",
			Usage: "Checkout directory",
		},
	}
}
