package cli

import (
	"errors"
	"io"
	"strings"
)

// readPromptLine reads up to the first newline without buffering past it, so
// consecutive prompts can share one reader.
func readPromptLine(in io.Reader) ([]byte, error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				break
			}
			line = append(line, buf[0])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return []byte(strings.TrimRight(string(line), "\r")), nil
}
