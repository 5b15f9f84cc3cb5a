package install

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/user"
	"path/filepath"

	shellquote "github.com/gopherclass/go-shellquote"
	"github.com/pkg/errors"
	contextInternal "github.com/stockmon/stockmonctl/internal/context"
	"github.com/stockmon/stockmonctl/pkg/editor"
	osinfo "github.com/stockmon/stockmonctl/pkg/os_info"
	packagemanager "github.com/stockmon/stockmonctl/pkg/package_manager"
	"github.com/stockmon/stockmonctl/pkg/python"
	"github.com/stockmon/stockmonctl/pkg/service"
	"github.com/stockmon/stockmonctl/pkg/stockmon"
	"github.com/stockmon/stockmonctl/pkg/utils"
	"github.com/urfave/cli/v2"
)

type installState struct {
	Path      string
	Branch    string
	Token     string
	ExecStart string

	SkipEditor  bool
	Interactive bool

	User   string
	OSInfo osinfo.Info
}

//nolint:funlen
func Handle(cliCtx *cli.Context) error {
	fmt.Println("Install stock monitor")

	state := installState{
		Path:       cliCtx.String("path"),
		Branch:     cliCtx.String("branch"),
		Token:      cliCtx.String("token"),
		SkipEditor: cliCtx.Bool("skip-editor"),
	}

	state.Interactive = !cliCtx.Bool("non-interactive") && utils.IsInteractive()

	if state.Branch == "" {
		state.Branch = stockmon.DefaultBranch
	}

	if state.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.WithMessage(err, "failed to detect home directory")
		}
		state.Path = filepath.Join(home, stockmon.DefaultCheckoutDirName)
	}

	currentUser, err := user.Current()
	if err != nil {
		return errors.WithMessage(err, "failed to detect current user")
	}
	state.User = currentUser.Username

	state.OSInfo = contextInternal.OSInfoFromContext(cliCtx.Context)

	execStart := cliCtx.String("exec")
	if execStart != "" {
		if _, err := shellquote.Split(execStart); err != nil {
			return errors.WithMessage(err, "invalid exec command line")
		}
		state.ExecStart = execStart
	} else {
		state.ExecStart = "/usr/bin/python3 " + filepath.Join(state.Path, stockmon.EntryPointFileName)
	}

	pm, err := packagemanager.Load(cliCtx.Context)
	if err != nil {
		return errors.WithMessage(err, "failed to load package manager")
	}

	fmt.Println("Updating package index ...")
	if err = pm.CheckForUpdates(cliCtx.Context); err != nil {
		fmt.Println("Warning: failed to update package index:", err)
	}

	packs := []string{
		packagemanager.GitPackage,
		packagemanager.Python3Package,
		packagemanager.Python3PipPackage,
	}
	if state.Interactive && !state.SkipEditor {
		// An editor session follows config materialization.
		packs = append(packs, packagemanager.NanoPackage)
	}

	fmt.Println("Installing git and python ...")
	if err = pm.Install(cliCtx.Context, packs...); err != nil {
		fmt.Println("Warning: failed to install packages:", err)
	}

	fmt.Println("Fetching source ...")
	state, err = fetchSource(cliCtx.Context, state)
	if err != nil {
		return errors.WithMessage(err, "failed to fetch source")
	}

	fmt.Println("Installing python dependencies ...")
	if err = python.InstallDependencies(cliCtx.Context, state.Path); err != nil {
		fmt.Println("Warning: failed to install python dependencies:", err)
	}

	fmt.Println("Preparing configuration ...")
	state, err = materializeConfig(cliCtx.Context, state)
	if err != nil {
		fmt.Println("Warning: failed to prepare configuration:", err)
	}

	fmt.Println("Registering service ...")
	svc, err := service.Load(cliCtx.Context)
	if err != nil {
		return errors.WithMessage(err, "failed to load service manager")
	}

	err = registerService(cliCtx.Context, svc, state, stockmon.DefaultUnitFilePath)
	if err != nil {
		return errors.WithMessage(err, "failed to register service")
	}

	fmt.Println("Service status:")
	err = svc.Status(cliCtx.Context, stockmon.DefaultServiceName)
	if err != nil {
		fmt.Println("Warning:", err)
	}

	fmt.Println("Stock monitor installed")

	return nil
}

func fetchSource(ctx context.Context, state installState) (installState, error) {
	if utils.IsFileExists(state.Path) {
		if !utils.IsCommandAvailable("git") {
			fmt.Println("Warning: git is not available, skipping source update")

			return state, nil
		}

		err := utils.ExecCommand("git", "-C", state.Path, "pull")
		if err != nil {
			return state, errors.WithMessage(err, "failed to pull source")
		}

		return state, nil
	}

	if !utils.IsCommandAvailable("git") {
		// Last resort when git could not be installed.
		fmt.Println("git is not available, downloading source archive ...")
		err := downloadSourceArchive(ctx, state.Path)
		if err != nil {
			return state, errors.WithMessage(err, "failed to download source archive")
		}

		return state, nil
	}

	err := utils.ExecCommand(
		"git", "clone", "-b", state.Branch, stockmon.SourceRepository, state.Path,
	)
	if err != nil {
		return state, errors.WithMessage(err, "failed to clone source")
	}

	return state, nil
}

// downloadSourceArchive fetches the repository tarball into a temporary
// directory and relocates the extracted tree to dst, so the checkout
// ends up laid out the same way a clone would be.
func downloadSourceArchive(ctx context.Context, dst string) error {
	tempDir, err := os.MkdirTemp("", "stockmonctl-source")
	if err != nil {
		return errors.WithMessage(err, "failed to create temp dir")
	}
	defer func() {
		err := os.RemoveAll(tempDir)
		if err != nil {
			log.Println(err)
		}
	}()

	err = utils.Download(ctx, stockmon.SourceArchiveURL, tempDir)
	if err != nil {
		return errors.WithMessage(err, "failed to download source archive")
	}

	return relocateCheckout(tempDir, dst)
}

// relocateCheckout moves the extracted archive contents to dst. Branch
// archives wrap everything in a single <repo>-<branch> directory, which
// must be stripped or the entry point ends up one level too deep.
func relocateCheckout(extractedDir string, dst string) error {
	entries, err := os.ReadDir(extractedDir)
	if err != nil {
		return errors.WithMessage(err, "failed to read extracted archive")
	}

	if len(entries) == 1 && entries[0].IsDir() {
		return utils.Move(filepath.Join(extractedDir, entries[0].Name()), dst)
	}

	return utils.Move(extractedDir, dst)
}

func materializeConfig(ctx context.Context, state installState) (installState, error) {
	configPath := filepath.Join(state.Path, stockmon.ConfigFileName)
	examplePath := filepath.Join(state.Path, stockmon.ConfigExampleFileName)

	if utils.IsFileExists(configPath) {
		fmt.Println("Configuration file already exists ...")

		return state, nil
	}

	if !utils.IsFileExists(examplePath) {
		return state, errors.Errorf("config template %s not found", examplePath)
	}

	err := utils.Copy(examplePath, configPath)
	if err != nil {
		return state, errors.WithMessage(err, "failed to copy config template")
	}

	if state.Token == "" && state.Interactive && !state.SkipEditor {
		token, err := utils.AskSecret("Enter Tushare API token (leave empty to fill the config manually): ")
		if err == nil {
			state.Token = token
		}
	}

	if state.Token != "" {
		err = seedConfigToken(configPath, state.Token)
		if err != nil {
			return state, errors.WithMessage(err, "failed to seed api token")
		}
	}

	openConfigEditor(ctx, state, configPath)

	return state, nil
}

// seedConfigToken puts the token into api_settings.tushare_token,
// leaving the rest of the config untouched.
func seedConfigToken(configPath string, token string) error {
	contents, err := os.ReadFile(configPath)
	if err != nil {
		return errors.WithMessage(err, "failed to read config")
	}

	config := map[string]interface{}{}
	err = json.Unmarshal(contents, &config)
	if err != nil {
		return errors.WithMessage(err, "failed to parse config")
	}

	apiSettings, ok := config["api_settings"].(map[string]interface{})
	if !ok {
		apiSettings = map[string]interface{}{}
		config["api_settings"] = apiSettings
	}
	apiSettings["tushare_token"] = token

	updated, err := json.MarshalIndent(config, "", "    ")
	if err != nil {
		return errors.WithMessage(err, "failed to marshal config")
	}

	return utils.WriteContentsToFile(updated, configPath)
}

func openConfigEditor(ctx context.Context, state installState, configPath string) {
	if state.SkipEditor || !state.Interactive {
		return
	}

	editorPath, err := editor.Find()
	if err != nil {
		fmt.Println("No editor found, edit", configPath, "manually")

		return
	}

	answer, err := utils.Ask(
		"Open the configuration in an editor to fill in the remaining secrets? (Y/n): ",
		true,
		func(s string) (bool, string) {
			if s == "y" || s == "Y" || s == "n" || s == "N" {
				return true, ""
			}

			return false, "Please answer y or n"
		},
	)
	if err != nil || answer == "n" || answer == "N" {
		fmt.Println("Edit", configPath, "manually before relying on notifications")

		return
	}

	fmt.Println("Opening", configPath, "in editor, fill in the secrets and exit ...")
	err = editor.Open(ctx, editorPath, configPath)
	if err != nil {
		fmt.Println("Warning: editor exited with error:", err)
	}
}

// registerService renders and installs the unit, then reloads the
// service manager, enables the unit on boot and starts it. Enable has
// to come before start for boot persistence to apply on the first run.
func registerService(ctx context.Context, svc service.Service, state installState, unitPath string) error {
	u := service.Unit{
		Description:      "Stock Monitoring Service",
		User:             state.User,
		WorkingDirectory: state.Path,
		ExecStart:        state.ExecStart,
	}

	err := service.InstallUnit(ctx, u, unitPath)
	if err != nil {
		return errors.WithMessage(err, "failed to install unit")
	}

	err = svc.DaemonReload(ctx)
	if err != nil {
		return errors.WithMessage(err, "failed to reload service manager")
	}

	err = svc.Enable(ctx, stockmon.DefaultServiceName)
	if err != nil {
		return errors.WithMessage(err, "failed to enable service")
	}

	err = svc.Start(ctx, stockmon.DefaultServiceName)
	if err != nil {
		return errors.WithMessage(err, "failed to start service")
	}

	return nil
}
