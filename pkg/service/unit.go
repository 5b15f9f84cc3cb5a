package service

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"text/template"

	"github.com/pkg/errors"
	"github.com/stockmon/stockmonctl/pkg/utils"
)

const unitTemplate = `[Unit]
Description={{.Description}}
After=network.target

[Service]
User={{.User}}
WorkingDirectory={{.WorkingDirectory}}
ExecStart={{.ExecStart}}
Restart=always
RestartSec=10

[Install]
WantedBy=multi-user.target
`

type Unit struct {
	Description      string
	User             string
	WorkingDirectory string
	ExecStart        string
}

func (u Unit) Render() ([]byte, error) {
	tmpl, err := template.New("unit").Parse(unitTemplate)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to parse unit template")
	}

	buf := bytes.Buffer{}
	buf.Grow(len(unitTemplate))
	if err := tmpl.Execute(&buf, u); err != nil {
		return nil, errors.WithMessage(err, "failed to render unit template")
	}

	return buf.Bytes(), nil
}

// InstallUnit writes the rendered unit into a temporary file and moves
// it to path, overwriting any previous version. The caller is expected
// to reload the service manager afterwards.
func InstallUnit(_ context.Context, u Unit, path string) error {
	contents, err := u.Render()
	if err != nil {
		return err
	}

	tempDir, err := os.MkdirTemp("", "stockmonctl-unit")
	if err != nil {
		return errors.WithMessage(err, "failed to create temp dir")
	}
	defer func(path string) {
		err := os.RemoveAll(path)
		if err != nil {
			log.Println(err)
		}
	}(tempDir)

	tempPath := filepath.Join(tempDir, filepath.Base(path))
	err = utils.WriteContentsToFile(contents, tempPath)
	if err != nil {
		return errors.WithMessage(err, "failed to write unit file")
	}

	err = utils.Move(tempPath, path)
	if err != nil {
		return errors.WithMessage(err, "failed to move unit file")
	}

	return nil
}
