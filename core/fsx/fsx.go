package fsx

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Artifact is one whole-file output of a run.
type Artifact struct {
	Path    string
	Content []byte
	Mode    os.FileMode
}

// WriteArtifacts writes each artifact atomically in order and stops at the
// first failure. Artifacts already written stay in place.
func WriteArtifacts(artifacts []Artifact) error {
	for _, artifact := range artifacts {
		if artifact.Path == "" {
			return fmt.Errorf("artifact path is required")
		}
		mode := artifact.Mode
		if mode == 0 {
			mode = 0o644
		}
		if err := WriteFileAtomic(artifact.Path, artifact.Content, mode); err != nil {
			return fmt.Errorf("write %s: %w", artifact.Path, err)
		}
	}
	return nil
}

// WriteFileAtomic replaces path with content through a sibling temp file so
// readers never observe a half-written artifact.
func WriteFileAtomic(path string, content []byte, mode os.FileMode) error {
	parent := filepath.Dir(path)
	base := filepath.Base(path)
	if parent != "." && parent != "" {
		if err := os.MkdirAll(parent, 0o750); err != nil {
			return fmt.Errorf("create parent directory: %w", err)
		}
	}

	tempFile, err := os.CreateTemp(parent, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(content); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tempFile.Chmod(mode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := replaceFile(tempPath, path); err != nil {
		return err
	}
	cleanup = false
	syncDirectory(parent)
	return nil
}

func replaceFile(from, to string) error {
	err := os.Rename(from, to)
	if err == nil {
		return nil
	}
	if runtime.GOOS != "windows" {
		return fmt.Errorf("rename temp file: %w", err)
	}
	if removeErr := os.Remove(to); removeErr != nil && !os.IsNotExist(removeErr) {
		return fmt.Errorf("remove destination before rename: %w", removeErr)
	}
	if renameErr := os.Rename(from, to); renameErr != nil {
		return fmt.Errorf("rename temp file after remove: %w", renameErr)
	}
	return nil
}

func syncDirectory(path string) {
	// #nosec G304 -- directory is the parent of a caller-provided destination.
	if dirHandle, err := os.Open(path); err == nil {
		_ = dirHandle.Sync()
		_ = dirHandle.Close()
	}
}
