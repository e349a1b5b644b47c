package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// DocumentSource loads document text by identifier. Read never fails:
// a missing or unreadable document yields an empty string.
type DocumentSource interface {
	Read(id string) string
}

// FileSource implements DocumentSource using the local file system.
// Identifiers are file paths.
type FileSource struct {
	logger *logrus.Entry
}

// NewFileSource creates a new file-based document source
func NewFileSource(logger *logrus.Entry) *FileSource {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &FileSource{
		logger: logger.WithField("component", "storage"),
	}
}

// Read returns the text of the file at path. HTML files are reduced to their
// visible text.
func (fs *FileSource) Read(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		fs.logger.WithError(err).WithField("path", path).Debug("Unreadable document treated as empty")
		return ""
	}

	if isHTML(path) {
		text, err := extractText(bytes.NewReader(data))
		if err != nil {
			fs.logger.WithError(err).WithField("path", path).Debug("Unparsable HTML treated as empty")
			return ""
		}
		return text
	}

	return string(data)
}

// ListCandidates returns the paths of the regular files in dir, sorted by
// name, leaving out the file named source. Symlinks are followed.
func ListCandidates(dir, source string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Name() == source {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

func isHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
