package status

import (
	"os"
	"path/filepath"
)

func webAppAvailable(dir string) bool {
	if dir == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, "index.html"))
	return err == nil && !info.IsDir()
}
