package ingest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// walkStaged 遍历暂存目录收集文件清单.
func walkStaged(dir string) ([]SiteFile, int64, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, ErrEmptyUpload
		}

		return nil, 0, fmt.Errorf("stat staging dir: %w", err)
	}

	if !info.IsDir() {
		return nil, 0, fmt.Errorf("staging path %s is not a directory", dir)
	}

	var (
		files []SiteFile
		total int64
	)

	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}

		relSlash := filepath.ToSlash(rel)

		files = append(files, SiteFile{
			RelativePath: relSlash,
			LocalPath:    p,
			Size:         fi.Size(),
			ContentType:  ContentTypeFor(relSlash),
		})
		total += fi.Size()

		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walk staging dir: %w", err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelativePath < files[j].RelativePath
	})

	return files, total, nil
}
