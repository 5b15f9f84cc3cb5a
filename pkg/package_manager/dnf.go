package packagemanager

import (
	"context"
	"log"
	"os"
	"os/exec"
)

type dnf struct {
	// command is "dnf" or, on hosts without it, "yum".
	command string
}

func newDNF() *dnf {
	command := "dnf"
	if _, err := exec.LookPath(command); err != nil {
		command = "yum"
	}

	return &dnf{command: command}
}

func (d *dnf) CheckForUpdates(_ context.Context) error {
	cmd := exec.Command(d.command, "makecache", "-y")

	cmd.Env = os.Environ()

	log.Println('\n', cmd.String())
	cmd.Stderr = log.Writer()
	cmd.Stdout = log.Writer()

	return cmd.Run()
}

func (d *dnf) Install(_ context.Context, packs ...string) error {
	args := []string{"install", "-y"}
	for _, pack := range packs {
		if pack == "" || pack == " " {
			continue
		}
		args = append(args, pack)
	}
	cmd := exec.Command(d.command, args...)

	cmd.Env = os.Environ()

	log.Println('\n', cmd.String())
	cmd.Stderr = log.Writer()
	cmd.Stdout = log.Writer()

	return cmd.Run()
}
