package utils

import (
	"bytes"
	"context"
	"log"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// IsCommandAvailable reports whether command resolves on the search
// path; provisioning steps use it to pick between git, pip and editor
// variants before shelling out.
func IsCommandAvailable(command string) bool {
	_, err := exec.LookPath(command)

	return err == nil
}

func ExecCommand(command string, args ...string) error {
	cmd := exec.Command(command, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	log.Println('\n', cmd.String())

	return cmd.Run()
}

func ExecCommandWithOutput(ctx context.Context, command string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, command, args...)

	buf := &bytes.Buffer{}
	buf.Grow(1024) //nolint:gomnd
	cmd.Stdout = buf
	cmd.Stderr = log.Writer()
	log.Println('\n', cmd.String())
	err := cmd.Run()
	if err != nil {
		return "", errors.Wrapf(err, "failed to run command %s", command)
	}

	return buf.String(), nil
}
