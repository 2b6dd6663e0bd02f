package checkers

import (
	"context"
	"fmt"
	"os"
)

// UploadDirChecker verifies the upload directory still exists and is a
// directory. Cheap enough to run on every readiness probe.
type UploadDirChecker struct {
	dir string
}

func NewUploadDirChecker(dir string) *UploadDirChecker {
	return &UploadDirChecker{dir: dir}
}

func (c *UploadDirChecker) Name() string { return "uploads" }

func (c *UploadDirChecker) Check(ctx context.Context) error {
	info, err := os.Stat(c.dir)
	if err != nil {
		return fmt.Errorf("upload dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("upload dir %s is not a directory", c.dir)
	}
	return nil
}
