package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"timebook/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StorageError wraps a filesystem failure so the HTTP layer can map it to a
// 500 without leaking the underlying path or errno to the client.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store writes rendered booking documents to a flat output directory, one
// XML file per booking. Files are written once and never mutated.
type Store struct {
	dir    string
	logger zerolog.Logger

	mkdirOnce sync.Once
	mkdirErr  error

	// now is swapped in tests to pin the filename timestamp.
	now func() time.Time
}

func New(dir string, logger *zerolog.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logger.With().Str("component", "storage").Logger(),
		now:    time.Now,
	}
}

// Dir returns the output directory the store writes to.
func (s *Store) Dir() string { return s.dir }

func (s *Store) ensureDir() error {
	s.mkdirOnce.Do(func() {
		s.mkdirErr = os.MkdirAll(s.dir, 0o755)
	})
	return s.mkdirErr
}

// Save writes xmlContent to a fresh file named
// booking_<YYYYMMDD_HHmmss>_<8-hex>.xml and returns its metadata. The hex
// suffix comes from a random UUID, so two saves within the same second do
// not collide in practice; collisions are not handled beyond that.
func (s *Store) Save(ctx context.Context, xmlContent string) (models.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return models.FileInfo{}, err
	}
	if err := s.ensureDir(); err != nil {
		return models.FileInfo{}, &StorageError{Op: "mkdir", Err: err}
	}

	now := s.now()
	fileID := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	filename := fmt.Sprintf("booking_%s_%s.xml", now.Format("20060102_150405"), fileID)
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, []byte(xmlContent), 0o644); err != nil {
		return models.FileInfo{}, &StorageError{Op: "write", Err: err}
	}

	s.logger.Info().Str("filename", filename).Int("bytes", len(xmlContent)).Msg("booking document saved")

	return models.FileInfo{
		Filename: filename,
		Path:     path,
		Size:     int64(len(xmlContent)),
		Created:  now,
		Modified: now,
	}, nil
}

// List returns metadata for every .xml file in the output directory, newest
// first. Documents are write-once, so the mtime doubles as creation time.
func (s *Store) List(ctx context.Context) ([]models.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ensureDir(); err != nil {
		return nil, &StorageError{Op: "mkdir", Err: err}
	}

	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &StorageError{Op: "readdir", Err: err}
	}

	files := make([]models.FileInfo, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".xml") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, &StorageError{Op: "stat", Err: err}
		}
		files = append(files, models.FileInfo{
			Filename: entry.Name(),
			Size:     info.Size(),
			Created:  info.ModTime(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Created.Equal(files[j].Created) {
			return files[i].Filename > files[j].Filename
		}
		return files[i].Created.After(files[j].Created)
	})

	return files, nil
}
