package editor

import (
	"context"
	"log"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

var candidates = []string{"nano", "vim"}

var ErrNoEditorFound = errors.New("no editor found")

// Find probes the search path for a usable interactive editor.
func Find() (string, error) {
	for _, candidate := range candidates {
		path, err := exec.LookPath(candidate)
		if err == nil {
			return path, nil
		}
	}

	return "", ErrNoEditorFound
}

// Open launches the editor attached to the operator's terminal and
// blocks until the operator exits it.
func Open(ctx context.Context, editorPath string, filePath string) error {
	cmd := exec.CommandContext(ctx, editorPath, filePath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	log.Println('\n', cmd.String())

	return cmd.Run()
}
