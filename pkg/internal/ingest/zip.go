package ingest

import (
	"archive/zip"
	"fmt"
	"strings"
)

// StageZip 解包 zip 到暂存目录并规范化.
// 条目数（不含目录）超过上限时整批拒绝，不落任何文件.
func StageZip(zr *zip.Reader, destDir string, limits Limits) (*Bundle, error) {
	count := 0

	for _, f := range zr.File {
		if isZipDir(f) {
			continue
		}

		count++
	}

	if limits.MaxFileCount > 0 && count > limits.MaxFileCount {
		return nil, fmt.Errorf("%w: %d files, limit %d", ErrTooManyFiles, count, limits.MaxFileCount)
	}

	stager, err := NewStager(destDir, limits)
	if err != nil {
		return nil, err
	}

	for _, f := range zr.File {
		if isZipDir(f) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			stager.Discard()

			return nil, fmt.Errorf("open zip entry %s: %w", f.Name, err)
		}

		err = stager.Add(f.Name, rc)

		_ = rc.Close()

		if err != nil {
			stager.Discard()

			return nil, err
		}
	}

	bundle, err := stager.Finalize()
	if err != nil {
		stager.Discard()

		return nil, err
	}

	return bundle, nil
}

// isZipDir 目录条目以 / 结尾.
func isZipDir(f *zip.File) bool {
	return strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir()
}

// LoadStaged 从已存在的暂存目录重建 Bundle（deploy 在独立请求中读取 upload 的结果）.
func LoadStaged(dir string) (*Bundle, error) {
	files, total, err := walkStaged(dir)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, ErrEmptyUpload
	}

	fp, err := fingerprint(files)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Dir:         dir,
		Files:       files,
		TotalBytes:  total,
		Fingerprint: fp,
	}, nil
}
