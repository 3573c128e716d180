package fsutil

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

var ErrNotFound = os.ErrNotExist

// FileStat is the result of looking a path up on disk. The zero value is
// Absent: the path does not exist or could not be stat'ed.
type FileStat struct {
	Size    int64
	ModTime time.Time
	IsDir   bool
	present bool
}

// Absent is the stat result of a missing or unreadable path.
var Absent = FileStat{}

// Present returns a stat result for an existing file with the given mod time.
func Present(modTime time.Time) FileStat {
	return FileStat{ModTime: modTime, present: true}
}

// Exists reports whether the stat result describes an existing path.
func (s FileStat) Exists() bool {
	return s.present
}

// NewerThan reports whether s exists and was modified strictly after t.
func (s FileStat) NewerThan(t time.Time) bool {
	return s.present && s.ModTime.After(t)
}

// StatFile returns size and mod time for a path.
func StatFile(p string) (FileStat, error) {
	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return FileStat{}, ErrNotFound
		}
		return FileStat{}, err
	}
	return FileStat{
		Size:    info.Size(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
		present: true,
	}, nil
}

// Lookup is StatFile with every failure folded into Absent. Permission and
// I/O errors are indistinguishable from a missing file for the caller.
func Lookup(p string) FileStat {
	st, err := StatFile(p)
	if err != nil {
		return Absent
	}
	return st
}

// HasMeta reports whether pattern contains glob metacharacters.
func HasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// MatchesAny returns true if the path matches any of the globs.
func MatchesAny(p string, globs []string) bool {
	normalized := filepath.ToSlash(p)
	for _, g := range globs {
		if g == "" {
			continue
		}
		ok, err := doublestar.Match(g, normalized)
		if err == nil && ok {
			return true
		}
	}
	return false
}

// NormalizeGlob trims a user supplied glob and converts it to forward slashes.
func NormalizeGlob(g string) string {
	trimmed := strings.TrimSpace(g)
	if trimmed == "" {
		return ""
	}
	trimmed = strings.ReplaceAll(trimmed, "\\", "/")
	for strings.Contains(trimmed, "//") {
		trimmed = strings.ReplaceAll(trimmed, "//", "/")
	}
	return trimmed
}

// ValidatePattern reports whether a glob pattern is well formed.
func ValidatePattern(pattern string) bool {
	return doublestar.ValidatePattern(filepath.ToSlash(pattern))
}

// Dir resolves relative paths and patterns against a workspace root.
// Absolute paths are used as given. The empty Dir means the process
// working directory.
type Dir string

// Path joins a relative path onto the root.
func (d Dir) Path(p string) string {
	if d == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(string(d), p)
}

// Stat looks p up relative to the root.
func (d Dir) Stat(p string) FileStat {
	return Lookup(d.Path(p))
}

// Glob expands pattern relative to the root. Matches come back in the same
// form as the pattern: relative patterns yield root-relative paths. The
// order is the lexical directory walk order of doublestar, which is stable
// for a given file-system state.
func (d Dir) Glob(pattern string) ([]string, error) {
	return d.glob(pattern)
}

// GlobFiles is Glob restricted to regular files.
func (d Dir) GlobFiles(pattern string) ([]string, error) {
	return d.glob(pattern, doublestar.WithFilesOnly())
}

func (d Dir) glob(pattern string, opts ...doublestar.GlobOption) ([]string, error) {
	if filepath.IsAbs(pattern) || d == "" || escapesRoot(pattern) {
		return doublestar.FilepathGlob(d.Path(pattern), opts...)
	}

	slashed := path.Clean(filepath.ToSlash(pattern))
	matches, err := doublestar.Glob(os.DirFS(string(d)), slashed, opts...)
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		matches[i] = filepath.FromSlash(m)
	}
	return matches, nil
}

func escapesRoot(pattern string) bool {
	slashed := path.Clean(filepath.ToSlash(pattern))
	return slashed == ".." || strings.HasPrefix(slashed, "../")
}
