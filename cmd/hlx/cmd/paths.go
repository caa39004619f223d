package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilianc/hlx/internal/hlx/config"
)

// finder resolves Go-style path patterns to source files.
type finder struct {
	ext  string
	skip map[string]bool
}

func newFinder(c *config.Config) *finder {
	f := &finder{ext: c.Extension, skip: map[string]bool{}}
	for _, d := range c.SkipDirs {
		f.skip[d] = true
	}
	return f
}

func (f *finder) skipDir(name string) bool {
	return f.skip[name] || strings.HasPrefix(name, ".")
}

func (f *finder) isSource(name string) bool {
	return strings.HasSuffix(name, f.ext)
}

// collect expands patterns relative to cwd:
//
//	./...       recurse from cwd
//	./dir       only that directory
//	./dir/...   recurse from that directory
//	./file.hlx  only that file
func (f *finder) collect(cwd string, patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string

	add := func(p string) error {
		abs, err := absFrom(cwd, p)
		if err != nil {
			return err
		}
		if !seen[abs] {
			seen[abs] = true
			out = append(out, abs)
		}
		return nil
	}

	for _, raw := range patterns {
		pat := strings.TrimSpace(raw)
		if pat == "" {
			continue
		}

		// Recursive pattern: <dir>/...
		if strings.HasSuffix(pat, "/...") || pat == "..." {
			base := strings.TrimSuffix(strings.TrimSuffix(pat, "..."), "/")
			if base == "" {
				base = "."
			}
			dir, err := absFrom(cwd, base)
			if err != nil {
				return nil, err
			}
			if err := f.walk(dir, add); err != nil {
				return nil, err
			}
			continue
		}

		target, err := absFrom(cwd, pat)
		if err != nil {
			return nil, err
		}
		st, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		if st.IsDir() {
			paths, err := f.dir(target)
			if err != nil {
				return nil, err
			}
			for _, p := range paths {
				if err := add(p); err != nil {
					return nil, err
				}
			}
			continue
		}
		if !f.isSource(target) {
			return nil, fmt.Errorf("hlx: not a %s file: %s", f.ext, target)
		}
		if err := add(target); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// dir lists the source files directly inside dir.
func (f *finder) dir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && f.isSource(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

func (f *finder) walk(root string, add func(string) error) error {
	return filepath.WalkDir(root, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() {
			if path != root && f.skipDir(de.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if f.isSource(de.Name()) {
			return add(path)
		}
		return nil
	})
}

func absFrom(cwd, p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(cwd, p)
	}
	return filepath.Abs(p)
}

func findModuleRoot(start string) (string, error) {
	d, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(d, "go.mod")); err == nil {
			return d, nil
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", fmt.Errorf("could not find go.mod above %s", start)
		}
		d = parent
	}
}
