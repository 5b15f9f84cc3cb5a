package utils

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"github.com/pkg/errors"
)

func IsFileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

func Move(src string, dst string) error {
	_, err := os.Stat(src)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return errors.WithMessagef(err, "source file %s not found", src)
	}
	if err != nil {
		return errors.WithMessage(err, "failed to stat src file")
	}

	dstDir := filepath.Dir(dst)
	_, err = os.Stat(dstDir)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		log.Printf("creating '%s' directory\n", dstDir)
		err = os.MkdirAll(dstDir, 0755)
		if err != nil {
			return errors.WithMessagef(err, "failed to create destination directory %s", dst)
		}
	}
	if err != nil {
		return errors.WithMessage(err, "failed to stat destination directory")
	}

	err = os.Rename(src, dst)
	if err == nil {
		return nil
	}

	// os.Rename fails across filesystems, fall back to copy+remove.
	err = copy.Copy(src, dst)
	if err != nil {
		return errors.WithMessage(err, "failed to copy files")
	}

	err = os.RemoveAll(src)
	if err != nil {
		return errors.WithMessage(err, "failed to remove files from source directory")
	}

	return nil
}

func Copy(src string, dst string) error {
	return copy.Copy(src, dst)
}

func WriteContentsToFile(contents []byte, path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			log.Println(err)
		}
	}(file)

	_, err = file.Write(contents)
	if err != nil {
		return err
	}

	return nil
}
