//go:build windows

package cli

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

func readPasswordNoEcho(stdin *os.File) ([]byte, error) {
	if stdin == nil {
		return nil, errors.New("stdin unavailable")
	}

	console := windows.Handle(stdin.Fd())
	var saved uint32
	if err := windows.GetConsoleMode(console, &saved); err != nil {
		return nil, err
	}
	if err := windows.SetConsoleMode(console, saved&^windows.ENABLE_ECHO_INPUT); err != nil {
		return nil, err
	}
	defer windows.SetConsoleMode(console, saved) //nolint:errcheck

	return readPromptLine(stdin)
}
