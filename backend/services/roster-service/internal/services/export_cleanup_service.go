package services

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/im7mortal/kmutex"

	"github.com/bostadsportal/mono-repo/backend/shared/go-utils"
)

// ExportCleanupService prunes per-building export directories under the
// export root once they are older than the retention window. Scheduled
// from main via cron. locks is the per-building lock the export handler
// holds, keyed by directory name, so a running export is never pruned.
type ExportCleanupService struct {
	root      string
	retention time.Duration
	locks     *kmutex.Kmutex
	now       func() time.Time
}

func NewExportCleanupService(root string, retention time.Duration, locks *kmutex.Kmutex) *ExportCleanupService {
	return &ExportCleanupService{root: root, retention: retention, locks: locks, now: time.Now}
}

// PruneExpired removes stale export directories and returns how many were
// deleted. A missing root is not an error.
func (s *ExportCleanupService) PruneExpired() (int, error) {
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-s.retention)
	removed := 0
	var errs []error
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		ok, err := s.pruneDir(e.Name(), cutoff)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			removed++
		}
	}

	if removed > 0 {
		utils.Logger.Infof("Pruned %d expired export directories under %s", removed, s.root)
	}
	return removed, errors.Join(errs...)
}

// pruneDir removes one export directory under its building lock. The age is
// checked again once the lock is held: an export that finished meanwhile
// has refreshed the directory.
func (s *ExportCleanupService) pruneDir(name string, cutoff time.Time) (bool, error) {
	s.locks.Lock(name)
	defer s.locks.Unlock(name)

	p := filepath.Join(s.root, name)
	info, err := os.Stat(p)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if info.ModTime().After(cutoff) {
		return false, nil
	}
	if err := os.RemoveAll(p); err != nil {
		return false, err
	}
	return true, nil
}

// Run is the cron entry point.
func (s *ExportCleanupService) Run() {
	if _, err := s.PruneExpired(); err != nil {
		utils.Logger.WithError(err).Error("Export cleanup failed")
	}
}
