package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"voice-renamer/internal/app/model"
)

// OutputDirLayout is the timestamp suffix of a run's output directory
const OutputDirLayout = "20060102_150405"

// ListAudioFiles returns the regular files of inputDir whose extension is one
// of extensions (case-insensitive), oldest creation time first. Files created
// at the same instant are ordered by name.
func ListAudioFiles(inputDir string, extensions []string) ([]model.FileInfo, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	allowed := lo.Map(extensions, func(ext string, _ int) string {
		return strings.ToLower(ext)
	})

	var fileInfos []model.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !lo.Contains(allowed, strings.ToLower(filepath.Ext(entry.Name()))) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		fileInfos = append(fileInfos, model.FileInfo{
			FullPath:  filepath.Join(inputDir, entry.Name()),
			Name:      entry.Name(),
			ModTime:   info.ModTime(),
			CreatedAt: creationTime(info),
			Size:      info.Size(),
		})
	}

	sort.SliceStable(fileInfos, func(i, j int) bool {
		if !fileInfos[i].CreatedAt.Equal(fileInfos[j].CreatedAt) {
			return fileInfos[i].CreatedAt.Before(fileInfos[j].CreatedAt)
		}
		return fileInfos[i].Name < fileInfos[j].Name
	})

	return fileInfos, nil
}

// OutputDir returns the sibling directory receiving the renamed copies of
// inputDir: <input_dir>_renamed_YYYYMMDD_HHMMSS
func OutputDir(inputDir string, now time.Time) string {
	clean := filepath.Clean(inputDir)
	return clean + "_renamed_" + now.Format(OutputDirLayout)
}

// EnsureDir creates dir and its parents when missing
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// CopyFile copies src to dst, keeping the permission bits and modification
// time of src. An existing dst is truncated.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	// OpenFile applies the umask, set the bits explicitly
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// ReadOutputFile reads the specified output file and returns its text content.
func ReadOutputFile(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(content)), nil
}
