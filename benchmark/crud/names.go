package crud

import (
	"bufio"
	"os"

	"github.com/pkg/errors"
)

// Reads a newline-delimited list of names; line order is kept
func loadNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open name list")
	}
	defer f.Close()

	names := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		names = append(names, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read name list %s", path)
	}
	if len(names) == 0 {
		return nil, errors.Errorf("name list %s is empty", path)
	}
	return names, nil
}
