package resume

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MaxResumes caps how many resumes a single invocation may process.
const MaxResumes = 10

// ErrTooManyResumes is returned when the input exceeds MaxResumes. It is a
// validation error raised before any resume is processed.
var ErrTooManyResumes = fmt.Errorf("at most %d resumes can be processed per run", MaxResumes)

var supportedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
}

// Collect resolves the list of resume files to process. Exactly one of folder
// or files must be provided. Unsupported or missing files in an explicit list
// are rejected; a folder is filtered down to supported files in sorted order.
func Collect(folder string, files []string) ([]string, error) {
	switch {
	case folder != "" && len(files) > 0:
		return nil, errors.New("folder and file list are mutually exclusive")
	case folder == "" && len(files) == 0:
		return nil, errors.New("either a folder or a list of files is required")
	}

	if folder != "" {
		return collectFromFolder(folder)
	}

	return collectExplicit(files)
}

func collectExplicit(files []string) ([]string, error) {
	collected := make([]string, 0, len(files))
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			return nil, fmt.Errorf("resume file %q: %w", file, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("resume file %q is a directory", file)
		}
		if !supported(file) {
			return nil, fmt.Errorf("resume file %q: unsupported format (want .pdf or .docx)", file)
		}
		collected = append(collected, file)
	}

	if len(collected) > MaxResumes {
		return nil, fmt.Errorf("%w, got %d", ErrTooManyResumes, len(collected))
	}

	return collected, nil
}

func collectFromFolder(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("reading resume folder %q: %w", folder, err)
	}

	var collected []string
	for _, entry := range entries {
		if entry.IsDir() || !supported(entry.Name()) {
			continue
		}
		collected = append(collected, filepath.Join(folder, entry.Name()))
	}

	// Deterministic processing order regardless of directory iteration.
	sort.Strings(collected)

	if len(collected) > MaxResumes {
		return nil, fmt.Errorf("%w, folder %q contains %d", ErrTooManyResumes, folder, len(collected))
	}

	return collected, nil
}

func supported(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}
