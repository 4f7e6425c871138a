package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var plainFileName = regexp.MustCompile(`^[a-z0-9][a-z0-9_'-]*$`)

// FileCache keeps synthesized audio on disk so each text is only synthesized once.
type FileCache struct {
	rootDir     string
	synthesizer Synthesizer
}

func NewFileCache(cacheDirectory string, synthesizer Synthesizer) *FileCache {
	return &FileCache{
		rootDir:     cacheDirectory,
		synthesizer: synthesizer,
	}
}

func (f *FileCache) filePath(text string) string {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(text)), " ", "_")
	if !plainFileName.MatchString(name) {
		sum := sha256.Sum256([]byte(text))
		name = hex.EncodeToString(sum[:])
	}
	return filepath.Join(f.rootDir, name+".mp3")
}

// Synthesize implements Synthesizer.
func (cache *FileCache) Synthesize(ctx context.Context, text string) ([]byte, error) {
	localFilePath := cache.filePath(text)
	if _, err := os.Stat(localFilePath); err == nil {
		contents, err := cache.read(localFilePath)
		if err != nil {
			return nil, fmt.Errorf("cache.read > %w", err)
		}
		return contents, nil
	}

	contents, err := cache.synthesizer.Synthesize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("synthesizer.Synthesize > %w", err)
	}

	if err := os.MkdirAll(cache.rootDir, 0o755); err != nil {
		return contents, fmt.Errorf("os.MkdirAll > %w", err)
	}
	file, err := os.Create(localFilePath)
	if err != nil {
		return contents, fmt.Errorf("os.Create > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := file.Write(contents); err != nil {
		return contents, fmt.Errorf("file.Write > %w", err)
	}
	return contents, nil
}

func (cache *FileCache) read(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll > %w", err)
	}
	return contents, nil
}
