//go:build !unix

package blob

import (
	"fmt"
	"os"
)

func mapFile(path string) (*Blob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &Blob{Data: data}, nil
}
