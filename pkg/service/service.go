package service

import (
	"context"
	"io"
	"log"
	"os"
	"os/exec"
	"sync"

	"github.com/pkg/errors"
	contextInternal "github.com/stockmon/stockmonctl/internal/context"
)

var (
	once    = sync.Once{}
	service Service
)

type Service interface {
	Start(ctx context.Context, serviceName string) error
	Stop(ctx context.Context, serviceName string) error
	Restart(ctx context.Context, serviceName string) error
	Status(ctx context.Context, serviceName string) error
	Enable(ctx context.Context, serviceName string) error
	DaemonReload(ctx context.Context) error
}

func Start(ctx context.Context, serviceName string) error {
	s, err := Load(ctx)
	if err != nil {
		return err
	}

	return s.Start(ctx, serviceName)
}

func Stop(ctx context.Context, serviceName string) error {
	s, err := Load(ctx)
	if err != nil {
		return err
	}

	return s.Stop(ctx, serviceName)
}

func Restart(ctx context.Context, serviceName string) error {
	s, err := Load(ctx)
	if err != nil {
		return err
	}
	err = s.Restart(ctx, serviceName)
	if err != nil {
		log.Println("Failed to restart:", err)
		err = s.Stop(ctx, serviceName)
		if err != nil {
			log.Println("Failed to stop:", err)
		}

		return s.Start(ctx, serviceName)
	}

	return nil
}

func Status(ctx context.Context, serviceName string) error {
	s, err := Load(ctx)
	if err != nil {
		return err
	}

	return s.Status(ctx, serviceName)
}

func Enable(ctx context.Context, serviceName string) error {
	s, err := Load(ctx)
	if err != nil {
		return err
	}

	return s.Enable(ctx, serviceName)
}

func DaemonReload(ctx context.Context) error {
	s, err := Load(ctx)
	if err != nil {
		return err
	}

	return s.DaemonReload(ctx)
}

//nolint:ireturn,nolintlint
func Load(ctx context.Context) (srv Service, err error) {
	osInfo := contextInternal.OSInfoFromContext(ctx)

	once.Do(func() {
		_, err := exec.LookPath("systemctl")
		if err == nil {
			service = NewSystemd()

			return
		}

		_, err = exec.LookPath("service")
		if err == nil {
			service = NewBasic()

			return
		}
	})

	if service == nil {
		err = NewErrUnsupportedDistribution(osInfo.Distribution)

		return nil, err
	}

	srv = service

	return srv, nil
}

type Systemd struct{}

func NewSystemd() *Systemd {
	return &Systemd{}
}

func (s *Systemd) Start(_ context.Context, serviceName string) error {
	cmd := exec.Command("systemctl", "start", serviceName)
	cmd.Stderr = log.Writer()
	cmd.Stdout = log.Writer()
	log.Println('\n', cmd.String())

	return cmd.Run()
}

func (s *Systemd) Stop(_ context.Context, serviceName string) error {
	cmd := exec.Command("systemctl", "stop", serviceName)
	cmd.Stderr = log.Writer()
	cmd.Stdout = log.Writer()
	log.Println('\n', cmd.String())

	return cmd.Run()
}

func (s *Systemd) Restart(_ context.Context, serviceName string) error {
	cmd := exec.Command("systemctl", "restart", serviceName)
	cmd.Stderr = log.Writer()
	cmd.Stdout = log.Writer()
	log.Println('\n', cmd.String())

	return cmd.Run()
}

func (s *Systemd) Enable(_ context.Context, serviceName string) error {
	cmd := exec.Command("systemctl", "enable", serviceName)
	cmd.Stderr = log.Writer()
	cmd.Stdout = log.Writer()
	log.Println('\n', cmd.String())

	return cmd.Run()
}

func (s *Systemd) DaemonReload(_ context.Context) error {
	cmd := exec.Command("systemctl", "daemon-reload")
	cmd.Stderr = log.Writer()
	cmd.Stdout = log.Writer()
	log.Println('\n', cmd.String())

	return cmd.Run()
}

const (
	systemDStatusInactive = 3
	systemDStatusNotFound = 4
)

func (s *Systemd) Status(_ context.Context, serviceName string) error {
	cmd := exec.Command("systemctl", "--no-pager", "status", serviceName)
	cmd.Stderr = log.Writer()
	// The status report is for the operator, not only the logfile.
	cmd.Stdout = io.MultiWriter(os.Stdout, log.Writer())
	log.Println('\n', cmd.String())

	var exitErr *exec.ExitError
	err := cmd.Run()
	if err != nil && !errors.As(err, &exitErr) {
		return errors.WithMessage(err, "service status command failed")
	}
	if exitErr != nil {
		switch exitErr.ExitCode() {
		case systemDStatusInactive:
			return ErrInactiveService
		case systemDStatusNotFound:
			return NewNotFoundError(serviceName)
		default:
			return errors.Wrapf(err, "service status command failed with exit code %d", exitErr.ExitCode())
		}
	}

	return nil
}

type Basic struct{}

func NewBasic() *Basic {
	return &Basic{}
}

func (s *Basic) Start(_ context.Context, serviceName string) error {
	cmd := exec.Command("service", serviceName, "start")
	cmd.Stderr = log.Writer()
	cmd.Stdout = log.Writer()
	log.Println('\n', cmd.String())

	return cmd.Run()
}

func (s *Basic) Stop(_ context.Context, serviceName string) error {
	cmd := exec.Command("service", serviceName, "stop")
	cmd.Stderr = log.Writer()
	cmd.Stdout = log.Writer()
	log.Println('\n', cmd.String())

	return cmd.Run()
}

func (s *Basic) Restart(_ context.Context, serviceName string) error {
	cmd := exec.Command("service", serviceName, "restart")
	cmd.Stderr = log.Writer()
	cmd.Stdout = log.Writer()
	log.Println('\n', cmd.String())

	return cmd.Run()
}

func (s *Basic) Status(_ context.Context, serviceName string) error {
	cmd := exec.Command("service", serviceName, "status")
	cmd.Stderr = log.Writer()
	cmd.Stdout = io.MultiWriter(os.Stdout, log.Writer())
	log.Println('\n', cmd.String())

	return cmd.Run()
}

func (s *Basic) Enable(_ context.Context, serviceName string) error {
	return errors.Errorf("enabling %s on boot is not supported by service(8)", serviceName)
}

func (s *Basic) DaemonReload(_ context.Context) error {
	return nil
}
