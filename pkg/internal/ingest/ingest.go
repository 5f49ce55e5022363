// Package ingest 把上传的站点文件（zip 包或带相对路径的文件集合）规范化为
// 暂存目录里的有序文件清单，供部署编排使用.
//
// 规则：
//   - 相对路径必须安全：拒绝绝对路径、反斜杠、`.` / `..` 段与空段，不做归一化修复
//   - 超出单文件大小上限的文件被单独跳过并记录原因
//   - 文件数量超过上限时整批拒绝
//   - 跳过后一个文件都不剩 → ErrEmptyUpload
package ingest

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var (
	// ErrEmptyUpload 没有任何可部署的文件.
	ErrEmptyUpload = errors.New("empty upload")
	// ErrTooManyFiles 文件数量超过上限，整批拒绝.
	ErrTooManyFiles = errors.New("too many files")
)

// BadPathError 非法相对路径.
type BadPathError struct {
	Path   string
	Reason string
}

func (e *BadPathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
}

// Limits 上传约束.
type Limits struct {
	MaxFileSizeBytes int64
	MaxFileCount     int
}

// SiteFile 规范化后的单个站点文件，内容已落在暂存目录.
type SiteFile struct {
	// RelativePath 站点内相对路径，正斜杠分隔
	RelativePath string
	// LocalPath 暂存目录内的绝对路径
	LocalPath   string
	Size        int64
	ContentType string
}

// Bundle 一次上传的规范化结果.
type Bundle struct {
	// Dir 暂存目录
	Dir        string
	Files      []SiteFile
	TotalBytes int64
	// Skipped 因单文件超限被跳过的文件
	Skipped []Skipped
	// Fingerprint 文件集合的 xxhash 指纹（路径有序）
	Fingerprint string
}

// Skipped 被跳过的文件.
type Skipped struct {
	Path   string
	Reason string
}

// SanitizePath 校验并返回规范的相对路径.
// 不做修复：任何可疑成分都直接拒绝.
func SanitizePath(p string) (string, error) {
	if p == "" {
		return "", &BadPathError{Path: p, Reason: "empty path"}
	}

	if strings.Contains(p, "\\") {
		return "", &BadPathError{Path: p, Reason: "backslash not allowed"}
	}

	if strings.HasPrefix(p, "/") {
		return "", &BadPathError{Path: p, Reason: "absolute path not allowed"}
	}

	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "":
			return "", &BadPathError{Path: p, Reason: "empty path segment"}
		case ".", "..":
			return "", &BadPathError{Path: p, Reason: "dot segment not allowed"}
		}
	}

	return p, nil
}

// ContentTypeFor 按扩展名推断内容类型，未知时回退 application/octet-stream.
func ContentTypeFor(relPath string) string {
	if ct := mime.TypeByExtension(filepath.Ext(relPath)); ct != "" {
		return ct
	}

	return "application/octet-stream"
}

// Stager 逐个收集文件到暂存目录.
type Stager struct {
	dir     string
	limits  Limits
	files   []SiteFile
	skipped []Skipped
	total   int64
}

// NewStager 创建暂存目录（若已存在则先清空，重复上传覆盖旧暂存）.
func NewStager(dir string, limits Limits) (*Stager, error) {
	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("clear staging dir: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}

	return &Stager{dir: dir, limits: limits}, nil
}

// Dir 返回暂存目录.
func (s *Stager) Dir() string { return s.dir }

// Add 收集一个文件.路径非法返回 BadPathError；数量超限返回 ErrTooManyFiles（调用方应整批放弃）；
// 单文件超限只记录跳过，不报错.
func (s *Stager) Add(relPath string, r io.Reader) error {
	clean, err := SanitizePath(relPath)
	if err != nil {
		return err
	}

	if s.limits.MaxFileCount > 0 && len(s.files)+1 > s.limits.MaxFileCount {
		return fmt.Errorf("%w: limit %d", ErrTooManyFiles, s.limits.MaxFileCount)
	}

	dst := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", clean, err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create staged file %s: %w", clean, err)
	}

	// 多读一个字节以检测超限
	var n int64

	if s.limits.MaxFileSizeBytes > 0 {
		n, err = io.Copy(f, io.LimitReader(r, s.limits.MaxFileSizeBytes+1))
	} else {
		n, err = io.Copy(f, r)
	}

	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		_ = os.Remove(dst)

		return fmt.Errorf("stage %s: %w", clean, err)
	}

	if s.limits.MaxFileSizeBytes > 0 && n > s.limits.MaxFileSizeBytes {
		_ = os.Remove(dst)

		s.skipped = append(s.skipped, Skipped{
			Path:   clean,
			Reason: fmt.Sprintf("exceeds max file size (%d bytes)", s.limits.MaxFileSizeBytes),
		})

		return nil
	}

	s.files = append(s.files, SiteFile{
		RelativePath: clean,
		LocalPath:    dst,
		Size:         n,
		ContentType:  ContentTypeFor(clean),
	})
	s.total += n

	return nil
}

// Finalize 结束收集，计算指纹.一个文件都没有时返回 ErrEmptyUpload.
func (s *Stager) Finalize() (*Bundle, error) {
	if len(s.files) == 0 {
		return nil, ErrEmptyUpload
	}

	sort.Slice(s.files, func(i, j int) bool {
		return s.files[i].RelativePath < s.files[j].RelativePath
	})

	fp, err := fingerprint(s.files)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Dir:         s.dir,
		Files:       s.files,
		TotalBytes:  s.total,
		Skipped:     s.skipped,
		Fingerprint: fp,
	}, nil
}

// Discard 放弃收集并清空暂存目录.
func (s *Stager) Discard() {
	_ = os.RemoveAll(s.dir)
}

// fingerprint 按路径顺序对路径与内容做 xxhash.
func fingerprint(files []SiteFile) (string, error) {
	h := xxhash.New()

	for _, f := range files {
		_, _ = h.WriteString(f.RelativePath)
		_, _ = h.Write([]byte{0})

		fh, err := os.Open(f.LocalPath)
		if err != nil {
			return "", fmt.Errorf("fingerprint %s: %w", f.RelativePath, err)
		}

		if _, err := io.Copy(h, fh); err != nil {
			_ = fh.Close()

			return "", fmt.Errorf("fingerprint %s: %w", f.RelativePath, err)
		}

		_ = fh.Close()
	}

	return fmt.Sprintf("%016x", h.Sum64()), nil
}
