// Package artifactstore implements ports.ArtifactStore on disk and in memory.
package artifactstore

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/errors"
	"sqlihunt/internal/platform/logx"
)

const filePerm = 0o644

// FileStore keeps each artifact as a plain text file, one record per line,
// inside a single working directory.
type FileStore struct {
	dir    string
	logger logx.Logger
	mu     sync.Mutex
}

var _ ports.ArtifactStore = (*FileStore)(nil)

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string, logger logx.Logger) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Mark(fmt.Errorf("create work dir %s: %w", dir, err), errors.ErrStorage)
	}
	return &FileStore{
		dir:    dir,
		logger: logger.With("component", "artifact-store"),
	}, nil
}

// Dir returns the working directory.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) LoadLastDomain() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, domain.LastDomainFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Mark(fmt.Errorf("read domain marker: %w", err), errors.ErrStorage)
	}

	d := strings.TrimSpace(string(data))
	return d, d != "", nil
}

func (s *FileStore) SaveLastDomain(d string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, domain.LastDomainFile)
	if err := os.WriteFile(path, []byte(d), filePerm); err != nil {
		return errors.Mark(fmt.Errorf("write domain marker: %w", err), errors.ErrStorage)
	}
	s.logger.Debug("domain marker saved", "domain", d)
	return nil
}

func (s *FileStore) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths := []string{filepath.Join(s.dir, domain.LastDomainFile)}
	for _, name := range domain.KnownArtifacts() {
		file, _ := name.FileName()
		paths = append(paths, filepath.Join(s.dir, file))
	}

	batches, err := s.batchFiles()
	if err != nil {
		return err
	}
	paths = append(paths, batches...)

	removed, err := removeAll(paths)
	if err != nil {
		return err
	}
	s.logger.Info("artifacts reset", "dir", s.dir, "removed", removed)
	return nil
}

func (s *FileStore) ResetBatches() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths, err := s.batchFiles()
	if err != nil {
		return err
	}
	removed, err := removeAll(paths)
	if err != nil {
		return err
	}
	if removed > 0 {
		s.logger.Debug("batch artifacts reset", "dir", s.dir, "removed", removed)
	}
	return nil
}

// batchFiles lists batch_N.txt artifacts and their batch_N.log scan logs.
// Names with a non-numeric N are not ours and are skipped.
func (s *FileStore) batchFiles() ([]string, error) {
	var paths []string
	for _, ext := range []string{".txt", ".log"} {
		matches, err := filepath.Glob(filepath.Join(s.dir, "batch_*"+ext))
		if err != nil {
			return nil, errors.Mark(fmt.Errorf("list batch artifacts: %w", err), errors.ErrStorage)
		}
		for _, p := range matches {
			name := domain.ArtifactName(strings.TrimSuffix(filepath.Base(p), ext))
			if name.IsBatch() {
				paths = append(paths, p)
			}
		}
	}
	return paths, nil
}

func removeAll(paths []string) (int, error) {
	removed := 0
	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, errors.Mark(fmt.Errorf("remove %s: %w", p, err), errors.ErrStorage)
		}
		removed++
	}
	return removed, nil
}

func (s *FileStore) ReadLines(name domain.ArtifactName) ([]string, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Mark(fmt.Errorf("open %s: %w", name, err), errors.ErrStorage)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024) // long crawled URLs

	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Mark(fmt.Errorf("read %s: %w", name, err), errors.ErrStorage)
	}
	return lines, nil
}

func (s *FileStore) WriteLines(name domain.ArtifactName, lines []string) error {
	return s.write(name, lines, os.O_CREATE|os.O_WRONLY|os.O_TRUNC)
}

func (s *FileStore) AppendLines(name domain.ArtifactName, lines []string) error {
	return s.write(name, lines, os.O_CREATE|os.O_WRONLY|os.O_APPEND)
}

// Locate returns the artifact's file path.
func (s *FileStore) Locate(name domain.ArtifactName) (string, error) {
	return s.path(name)
}

func (s *FileStore) write(name domain.ArtifactName, lines []string, flag int) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(path, flag, fs.FileMode(filePerm))
	if err != nil {
		return errors.Mark(fmt.Errorf("open %s for writing: %w", name, err), errors.ErrStorage)
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			f.Close()
			return errors.Mark(fmt.Errorf("write %s: %w", name, err), errors.ErrStorage)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Mark(fmt.Errorf("flush %s: %w", name, err), errors.ErrStorage)
	}
	if err := f.Close(); err != nil {
		return errors.Mark(fmt.Errorf("close %s: %w", name, err), errors.ErrStorage)
	}

	s.logger.Debug("artifact written", "artifact", name, "lines", len(lines))
	return nil
}

func (s *FileStore) path(name domain.ArtifactName) (string, error) {
	file, err := name.FileName()
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, file), nil
}
