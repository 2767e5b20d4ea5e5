package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/model"
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/utils"
	log "github.com/sirupsen/logrus"
)

// Extensions the backend accepts for upload.
var documentFilePattern = regexp.MustCompile(`(?i)^.+\.(zip|rar|xml|pdf)$`)

// FileRow is one rendered line of the file list.
type FileRow struct {
	Name     string
	Size     string
	Uploaded string
	Bytes    int64
}

// FileList is a full rendering of the backend's file set.
type FileList struct {
	Count          int
	CountText      string
	Rows           []FileRow
	ActionsVisible bool
}

func RenderFileList(files []model.UploadedFile) FileList {
	list := FileList{
		Count:     len(files),
		CountText: fmt.Sprintf("%d dosya", len(files)),
	}
	if len(files) == 0 {
		return list
	}
	list.ActionsVisible = true
	list.Rows = make([]FileRow, 0, len(files))
	for _, f := range files {
		list.Rows = append(list.Rows, FileRow{
			Name:     f.Name,
			Size:     utils.FormatFileSize(f.Size),
			Uploaded: f.Uploaded,
			Bytes:    f.Size,
		})
	}
	return list
}

// CollectFiles expands dropped or picked paths into uploadable documents.
// Directories are walked recursively, duplicates and other file types are
// skipped. The second result is the combined size in bytes.
func CollectFiles(paths []string) ([]string, int64) {
	var files []string
	var total int64
	seen := map[string]bool{}

	add := func(path string, info fs.FileInfo) {
		if !documentFilePattern.MatchString(strings.ToLower(filepath.Base(path))) {
			log.Debugf("%v is not an uploadable document", path)
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		files = append(files, path)
		total += info.Size()
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			log.WithError(err).Debugf("Skipping %v", path)
			continue
		}
		if !info.IsDir() {
			add(path, info)
			continue
		}
		_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if fi, infoErr := d.Info(); infoErr == nil && fi.Mode().IsRegular() {
				add(p, fi)
			}
			return nil
		})
	}
	return files, total
}
