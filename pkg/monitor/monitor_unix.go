//go:build linux || darwin

package monitor

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"syscall"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/stockmon/stockmonctl/pkg/oscore"
	"github.com/stockmon/stockmonctl/pkg/python"
	"github.com/stockmon/stockmonctl/pkg/runhelper"
	"github.com/stockmon/stockmonctl/pkg/service"
	"github.com/stockmon/stockmonctl/pkg/stockmon"
)

// FindProcess looks the monitor up by command line: the process name
// itself is just the python interpreter.
func FindProcess(ctx context.Context) (*process.Process, error) {
	return oscore.FindProcessByCmdline(ctx, stockmon.EntryPointFileName)
}

func Start(ctx context.Context, checkoutPath string) error {
	init, err := runhelper.DetectInit(ctx)
	if err != nil {
		log.Println("Failed to detect init:", err)
	}

	switch init {
	case runhelper.InitSystemd:
		err = startMonitorSystemd(ctx)
	case runhelper.InitUnknown:
		err = startMonitorFork(ctx, checkoutPath)
	}

	if err != nil {
		return errors.WithMessage(err, "failed to start stock monitor")
	}

	return nil
}

func Stop(ctx context.Context) error {
	init, err := runhelper.DetectInit(ctx)
	if err != nil {
		log.Println("Failed to detect init:", err)
	}

	switch init {
	case runhelper.InitSystemd:
		err = stopMonitorSystemd(ctx)
	case runhelper.InitUnknown:
		err = stopMonitorProcess(ctx)
	}

	if err != nil {
		return errors.WithMessage(err, "failed to stop stock monitor")
	}

	return nil
}

func Restart(ctx context.Context, checkoutPath string) error {
	init, err := runhelper.DetectInit(ctx)
	if err != nil {
		log.Println("Failed to detect init:", err)
	}

	if init == runhelper.InitSystemd {
		err = checkUnitFile(stockmon.DefaultUnitFilePath)
		if err != nil {
			return err
		}

		return service.Restart(ctx, stockmon.DefaultServiceName)
	}

	err = stopMonitorProcess(ctx)
	if err != nil {
		log.Println("Failed to stop monitor process:", err)
	}

	return startMonitorFork(ctx, checkoutPath)
}

func Status(ctx context.Context) error {
	init, err := runhelper.DetectInit(ctx)
	if err != nil {
		log.Println("Failed to detect init:", err)
	}

	if init == runhelper.InitSystemd {
		return service.Status(ctx, stockmon.DefaultServiceName)
	}

	p, err := FindProcess(ctx)
	if err != nil {
		return errors.WithMessage(err, "failed to find monitor process")
	}
	if p == nil {
		return errors.New("monitor process not found")
	}
	fmt.Println("Monitor process found with pid", p.Pid)

	return nil
}

// checkUnitFile verifies that install already registered the service.
func checkUnitFile(path string) error {
	_, err := os.Stat(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return errors.WithMessagef(
			err,
			"service configuration file %s not found, run install first",
			path,
		)
	}
	if err != nil {
		return errors.WithMessage(err, "failed to stat service configuration")
	}

	return nil
}

func startMonitorSystemd(ctx context.Context) error {
	err := checkUnitFile(stockmon.DefaultUnitFilePath)
	if err != nil {
		return err
	}

	err = service.Start(ctx, stockmon.DefaultServiceName)
	if err != nil {
		return errors.WithMessage(err, "failed to start service")
	}

	return nil
}

func stopMonitorSystemd(ctx context.Context) error {
	err := checkUnitFile(stockmon.DefaultUnitFilePath)
	if err != nil {
		return err
	}

	err = service.Stop(ctx, stockmon.DefaultServiceName)
	if err != nil {
		return errors.WithMessage(err, "failed to stop service")
	}

	return nil
}

type monitorAlreadyRunningError int

func (e monitorAlreadyRunningError) Error() string {
	return fmt.Sprintf("monitor is already running with pid %d", int(e))
}

func startMonitorFork(ctx context.Context, checkoutPath string) error {
	log.Println("Starting monitor (fork)")

	monitorProcess, err := FindProcess(ctx)
	if err != nil {
		return errors.WithMessage(err, "failed to find monitor process")
	}

	if monitorProcess != nil && monitorProcess.Pid != 0 {
		return monitorAlreadyRunningError(monitorProcess.Pid)
	}

	pythonPath, err := python.DefinePythonCommand()
	if err != nil {
		return errors.WithMessage(err, "failed to lookup python path")
	}
	log.Println("Found", pythonPath)

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return errors.WithMessage(err, "failed to open /dev/null")
	}
	defer func(devNull *os.File) {
		err := devNull.Close()
		if err != nil {
			log.Println("Failed to close /dev/null:", err)
		}
	}(devNull)

	attr := os.ProcAttr{
		Dir: checkoutPath,
		Env: os.Environ(),
		Sys: &syscall.SysProcAttr{
			Setsid: true, // Detach from the terminal.
		},
		Files: []*os.File{devNull, devNull, devNull},
	}
	p, err := os.StartProcess(pythonPath, []string{pythonPath, stockmon.EntryPointFileName}, &attr)
	if err != nil {
		return errors.WithMessage(err, "failed to start process")
	}

	log.Println("Process started with pid", p.Pid)

	// Reap the process when it terminates to avoid leaving a zombie.
	go func() {
		state, waitErr := p.Wait()
		if waitErr != nil {
			log.Printf("Error waiting for process (pid %d): %v\n", p.Pid, waitErr)

			return
		}
		log.Printf("Process (pid %d) exited with status: %s\n", p.Pid, state.String())
	}()

	return nil
}

func stopMonitorProcess(ctx context.Context) error {
	p, err := FindProcess(ctx)
	if err != nil {
		return errors.WithMessage(err, "failed to find monitor process")
	}
	if p == nil {
		return errors.New("monitor process not found")
	}

	return oscore.TerminateAndKillProcess(ctx, p)
}
