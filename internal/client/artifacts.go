package client

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// writeArtifact decodes base64 content and writes it to dir/name+ext.
// The directory must already exist; a missing directory is reported as an
// error wrapping fs.ErrNotExist.
func writeArtifact(dir, name, ext, content string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: artifact name %q", asc.ErrPathTraversalNotAllowed, name)
	}

	data, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return "", fmt.Errorf("decoding %s content: %w", ext, err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("checking destination directory: %w", err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", constants.ErrNotDirectory, dir)
	}

	path := filepath.Join(dir, name+ext)

	err = os.WriteFile(path, data, constants.ArtifactFilePerm)
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	return path, nil
}
