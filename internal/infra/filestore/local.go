package filestore

import (
	"fmt"
	"os"
	"path/filepath"
)

// Disk stores objects as plain files under a single directory. It is the
// primary copy every upload lands on before any remote mirror is attempted.
type Disk struct {
	root string
}

func NewDisk(root string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", root, err)
	}
	return &Disk{root: root}, nil
}

func (d *Disk) Put(key string, data []byte, _ string) error {
	if key == "" || key != SanitizeName(key) {
		return fmt.Errorf("unsafe storage key %q", key)
	}
	if err := os.WriteFile(filepath.Join(d.root, key), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// URLFor always reports absent: disk objects are served by the delivery
// handler, not redirected.
func (d *Disk) URLFor(string) (string, bool) {
	return "", false
}

// Path returns the on-disk location for a stored key.
func (d *Disk) Path(key string) string {
	return filepath.Join(d.root, key)
}
