// Package envfile maintains the flat KEY="value" credentials file.
// Not safe for concurrent writers: the single write path is the token
// exchange, triggered by one user action at a time.
package envfile

import (
	"fmt"
	"os"
	"strings"
)

const (
	KeyAPIKey      = "KITE_API_KEY"
	KeyAPISecret   = "KITE_API_SECRET"
	KeyAccessToken = "KITE_ACCESS_TOKEN"
)

// Set performs a read-modify-write of one key: an existing KEY= line is
// replaced in place, otherwise the line is appended. Every unrelated
// line, comments and blanks included, is preserved verbatim. The file
// is created when absent.
func Set(path, key, value string) error {
	line := fmt.Sprintf("%s=%q", key, value)

	input, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("%w: can't read env file", err)
		}
		return write(path, line+"\n")
	}

	lines := strings.Split(string(input), "\n")
	replaced := false
	for i, l := range lines {
		if strings.HasPrefix(l, key+"=") {
			lines[i] = line
			replaced = true
			break
		}
	}

	out := strings.Join(lines, "\n")
	if !replaced {
		if out != "" && !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		out += line + "\n"
	}

	return write(path, out)
}

func write(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("%w: can't write env file", err)
	}
	return nil
}
