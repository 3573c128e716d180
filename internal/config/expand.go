package config

import (
	"path/filepath"
	"strings"

	"github.com/mehmetkoksal-w/newer/internal/fsutil"
	"github.com/mehmetkoksal-w/newer/internal/logger"
	"github.com/mehmetkoksal-w/newer/internal/stale"
)

// ExpandSources turns source entries into literal paths. Entries without
// glob metacharacters are kept as given so a missing file still reaches the
// checker. Glob entries expand to files, minus ignore globs. An entry
// starting with "!" removes earlier matches. Order is preserved and
// duplicates are dropped.
func ExpandSources(dir fsutil.Dir, entries []string, ignore []string) []string {
	var out []string
	seen := make(map[string]struct{})

	for _, entry := range entries {
		if pattern, ok := strings.CutPrefix(entry, "!"); ok {
			out = exclude(out, seen, pattern)
			continue
		}
		if !fsutil.HasMeta(entry) {
			add(&out, seen, entry)
			continue
		}
		matches, err := dir.GlobFiles(entry)
		if err != nil {
			logger.Debug("expand %s: %v", entry, err)
			continue
		}
		if len(matches) == 0 {
			logger.Debug("source pattern %s matched nothing", entry)
		}
		for _, m := range matches {
			if fsutil.MatchesAny(m, ignore) {
				continue
			}
			add(&out, seen, m)
		}
	}
	return out
}

func add(out *[]string, seen map[string]struct{}, p string) {
	key := filepath.Clean(p)
	if _, ok := seen[key]; ok {
		return
	}
	seen[key] = struct{}{}
	*out = append(*out, p)
}

func exclude(paths []string, seen map[string]struct{}, pattern string) []string {
	kept := paths[:0]
	for _, p := range paths {
		if fsutil.MatchesAny(p, []string{normalizeGlob(pattern)}) {
			delete(seen, filepath.Clean(p))
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// Groups builds the checker input of a step. Every group carries the step's
// tasks as its actions.
func (c *Config) Groups(s Step) []stale.FileGroup {
	dir := fsutil.Dir(c.Root)
	pairs := s.Pairs()
	groups := make([]stale.FileGroup, 0, len(pairs))
	for _, p := range pairs {
		groups = append(groups, stale.FileGroup{
			Sources: ExpandSources(dir, p.Src.Values, c.Ignore),
			Dest:    p.Dest.Destination(),
			Actions: append([]string(nil), s.Tasks...),
		})
	}
	return groups
}
