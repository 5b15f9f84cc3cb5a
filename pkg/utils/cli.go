package utils

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

func Ask(question string, allowEmpty bool, validate func(string) (bool, string)) (string, error) {
	fmt.Println("")
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print(question)

		result, err := reader.ReadString('\n')
		if err != nil {
			return result, errors.WithMessage(err, "failed to read string")
		}
		result = strings.TrimSpace(result)

		if allowEmpty && result == "" {
			return result, nil
		}

		if validate != nil {
			ok, message := validate(result)
			if !ok {
				fmt.Println(message)

				continue
			}
		}

		if result != "" {
			return result, nil
		}
	}
}

// AskSecret reads a line without echoing it to the terminal.
func AskSecret(question string) (string, error) {
	fmt.Print(question)

	stdinFd := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFd) {
		return "", errors.New("stdin is not a terminal")
	}

	secretBytes, err := term.ReadPassword(stdinFd)
	fmt.Println("")
	if err != nil {
		return "", errors.WithMessage(err, "failed to read secret")
	}

	return strings.TrimSpace(string(secretBytes)), nil
}

func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
