package icon

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileCache keeps downloaded icons on disk, one PNG per icon code.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (f *FileCache) filePath(code string) string {
	return filepath.Join(f.rootDir, code+".png")
}

// cache returns the path of the cached icon, calling f to download it on a miss.
func (cache *FileCache) cache(code string, f func() ([]byte, error)) (string, error) {
	localFilePath := cache.filePath(code)
	if _, err := os.Stat(localFilePath); err == nil {
		return localFilePath, nil
	}

	contents, err := f()
	if err != nil {
		return "", fmt.Errorf("download icon %s > %w", code, err)
	}

	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll > %w", err)
	}
	// Concurrent fetches of one code each write a temp file and rename it into place.
	file, err := os.CreateTemp(cache.rootDir, code+"-*.png.tmp")
	if err != nil {
		return "", fmt.Errorf("os.CreateTemp > %w", err)
	}
	tmpPath := file.Name()
	if _, err := file.Write(contents); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("file.Write > %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("file.Close > %w", err)
	}
	if err := os.Rename(tmpPath, localFilePath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("os.Rename > %w", err)
	}
	return localFilePath, nil
}
