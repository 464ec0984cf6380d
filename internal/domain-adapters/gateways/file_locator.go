package gateways

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
)

// DirectoryReader lists the entries of a single directory.
// Entries are returned in the reader's native order.
type DirectoryReader interface {
	ReadDir(name string) ([]fs.DirEntry, error)
}

// osDirectoryReader reads directories in filesystem order, without sorting
type osDirectoryReader struct{}

func (osDirectoryReader) ReadDir(name string) ([]fs.DirEntry, error) {
	f, err := os.Open(name) //nolint:gosec // G304: Directory path comes from the walk
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // Defer close
	defer f.Close()
	return f.ReadDir(-1)
}

// RegexFileLocator finds files whose relative path matches a regular expression
type RegexFileLocator struct {
	reader DirectoryReader
}

// NewRegexFileLocator creates a locator backed by the real filesystem
func NewRegexFileLocator() *RegexFileLocator {
	return &RegexFileLocator{reader: osDirectoryReader{}}
}

// NewRegexFileLocatorWithReader creates a locator over a custom directory reader
func NewRegexFileLocatorWithReader(reader DirectoryReader) *RegexFileLocator {
	return &RegexFileLocator{reader: reader}
}

// FindFiles walks rootDir and returns the '/'-joined paths relative to it whose
// beginning matches pattern. Files of a directory come first, in listing order,
// followed by the results of each subdirectory. A missing rootDir yields no files.
func (l *RegexFileLocator) FindFiles(pattern, rootDir string) ([]string, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}

	if rootDir == "" {
		rootDir = "."
	}

	files, err := l.walk(re, rootDir, "")
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []string{}
	}
	return files, nil
}

func (l *RegexFileLocator) walk(re *regexp.Regexp, dir, rel string) ([]string, error) {
	entries, err := l.reader.ReadDir(dir)
	if err != nil {
		if rel == "" && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var matches []string
	var subdirs []fs.DirEntry
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, entry)
			continue
		}

		candidate := path.Join(rel, entry.Name())
		if re.MatchString(candidate) {
			matches = append(matches, candidate)
		}
	}

	for _, sub := range subdirs {
		found, err := l.walk(re, dir+string(os.PathSeparator)+sub.Name(), path.Join(rel, sub.Name()))
		if err != nil {
			return nil, err
		}
		matches = append(matches, found...)
	}

	return matches, nil
}
