package services

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/constants"
	internal_utils "github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/utils"
	"github.com/bostadsportal/mono-repo/backend/shared/go-utils"
)

type ArchiveResult struct {
	FileName    string
	Content     []byte
	ContentType string
}

type ArchiveBuilder struct{}

func NewArchiveBuilder() *ArchiveBuilder {
	return &ArchiveBuilder{}
}

// Build zips paths into {dir}/{name} and returns the archive bytes as read
// back from disk. Entries use the base name of each path only; duplicate
// base names are written as separate entries. An empty name or dir yields
// an empty result without touching the filesystem.
func (a *ArchiveBuilder) Build(name, dir string, paths []string) (*ArchiveResult, error) {
	if name == "" || dir == "" {
		return &ArchiveResult{}, nil
	}
	name = ArchiveFileName(name)
	target := filepath.Join(dir, name)

	if err := writeArchive(target, paths); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", internal_utils.ErrArchiveWrite, target, err)
	}

	content, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("%w: read back %s: %w", internal_utils.ErrArchiveWrite, target, err)
	}

	utils.Logger.WithField("archive", target).Debugf("Archived %d files (%d bytes)", len(paths), len(content))
	return &ArchiveResult{
		FileName:    name,
		Content:     content,
		ContentType: utils.ContentTypeZip,
	}, nil
}

// ArchiveFileName appends .zip unless name already ends with it in any case.
func ArchiveFileName(name string) string {
	if strings.HasSuffix(strings.ToLower(name), constants.ArchiveFileExtension) {
		return name
	}
	return name + constants.ArchiveFileExtension
}

func writeArchive(target string, paths []string) (err error) {
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(target)
		}
	}()

	zw := zip.NewWriter(f)
	for _, p := range paths {
		if err = addEntry(zw, p); err != nil {
			_ = zw.Close()
			return err
		}
	}
	return zw.Close()
}

func addEntry(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = filepath.Base(path)
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
