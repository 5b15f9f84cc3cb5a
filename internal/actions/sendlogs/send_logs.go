package sendlogs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	contextInternal "github.com/stockmon/stockmonctl/internal/context"
	"github.com/stockmon/stockmonctl/pkg/stockmon"
	"github.com/stockmon/stockmonctl/pkg/utils"
	"github.com/urfave/cli/v2"
)

var secretConfigKeys = []string{"tushare_token", "sckey", "corp_secret"}

// Handle gathers tool logs, service journal output, host information
// and a secret-stripped copy of the monitor config into a tar.gz
// bundle next to the current directory.
//
//nolint:funlen
func Handle(cliCtx *cli.Context) error {
	ctx := cliCtx.Context

	tmpDir, err := os.MkdirTemp("", "stockmonctl-logs")
	if err != nil {
		return errors.WithMessage(err, "failed to create temp dir")
	}
	defer func() {
		err := os.RemoveAll(tmpDir)
		if err != nil {
			log.Println(errors.WithMessage(err, "failed to remove temporary directory"))
		}
	}()

	err = collectToolLogs(ctx, tmpDir)
	if err != nil {
		return errors.WithMessage(err, "failed to collect stockmonctl logs")
	}

	err = collectServiceJournal(ctx, tmpDir)
	if err != nil {
		fmt.Println("Warning: failed to collect service journal:", err)
	}

	err = collectSystemInfo(ctx, tmpDir)
	if err != nil {
		return errors.WithMessage(err, "failed to collect system info")
	}

	err = collectRedactedConfig(ctx, cliCtx.String("path"), tmpDir)
	if err != nil {
		fmt.Println("Warning: failed to collect config:", err)
	}

	archivePath := fmt.Sprintf("stockmonctl-logs-%s.tar.gz", time.Now().Format("2006-01-02_15-04-05"))
	f, err := os.Create(archivePath)
	if err != nil {
		return errors.WithMessage(err, "failed to create archive file")
	}
	defer func() {
		err := f.Close()
		if err != nil {
			log.Println(errors.WithMessage(err, "failed to close archive file"))
		}
	}()

	err = compress(tmpDir, f)
	if err != nil {
		return errors.WithMessage(err, "failed to compress logs")
	}

	fmt.Println()
	fmt.Println("--------------------------")
	fmt.Println("Logs bundle written to", archivePath)
	fmt.Println("Attach it when reporting a problem")

	return nil
}

func collectToolLogs(_ context.Context, destinationDir string) error {
	if !utils.IsFileExists(stockmon.DefaultLogDirPath) {
		return nil
	}

	return utils.Copy(stockmon.DefaultLogDirPath, filepath.Join(destinationDir, "stockmonctl"))
}

func collectServiceJournal(ctx context.Context, destinationDir string) error {
	if !utils.IsCommandAvailable("journalctl") {
		return nil
	}

	out, err := utils.ExecCommandWithOutput(
		ctx, "journalctl", "-u", stockmon.DefaultServiceName, "--no-pager", "-n", "2000",
	)
	if err != nil {
		return errors.WithMessage(err, "failed to run journalctl")
	}

	return utils.WriteContentsToFile([]byte(out), filepath.Join(destinationDir, "journal.log"))
}

func collectSystemInfo(ctx context.Context, destinationDir string) error {
	osInfo := contextInternal.OSInfoFromContext(ctx)

	return utils.WriteContentsToFile([]byte(osInfo.String()), filepath.Join(destinationDir, "system_info.txt"))
}

func collectRedactedConfig(_ context.Context, checkoutPath string, destinationDir string) error {
	if checkoutPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.WithMessage(err, "failed to detect home directory")
		}
		checkoutPath = filepath.Join(home, stockmon.DefaultCheckoutDirName)
	}

	configPath := filepath.Join(checkoutPath, stockmon.ConfigFileName)
	if !utils.IsFileExists(configPath) {
		return nil
	}

	contents, err := os.ReadFile(configPath)
	if err != nil {
		return errors.WithMessage(err, "failed to read config")
	}

	config := map[string]interface{}{}
	err = json.Unmarshal(contents, &config)
	if err != nil {
		return errors.WithMessage(err, "failed to parse config")
	}

	redactSecrets(config)

	redacted, err := json.MarshalIndent(config, "", "    ")
	if err != nil {
		return errors.WithMessage(err, "failed to marshal config")
	}

	return utils.WriteContentsToFile(redacted, filepath.Join(destinationDir, stockmon.ConfigFileName))
}

func redactSecrets(config map[string]interface{}) {
	for key, value := range config {
		if nested, ok := value.(map[string]interface{}); ok {
			redactSecrets(nested)

			continue
		}

		for _, secretKey := range secretConfigKeys {
			if key != secretKey {
				continue
			}
			if s, ok := value.(string); ok && s != "" {
				config[key] = "REDACTED"
			}
		}
	}
}
