package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	kerrors "github.com/PolarWolf314/kanote/internal/errors"
)

// ReadPasswordLine reads one line from r and strips the line ending. Callers
// that need several passwords from the same stream share one reader.
func ReadPasswordLine(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil, kerrors.ErrEmptyPassword
	}

	return []byte(line), nil
}
