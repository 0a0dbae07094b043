package snapshot

import (
	"encoding/json"
	"os"
	"sort"

	"go.uber.org/zap"
)

// Store persists the set of symbols already flagged as risers during the
// current reporting window. The on-disk format is a plain, indented JSON
// array of strings so operators can inspect or repair it by hand.
type Store struct {
	path   string
	logger *zap.Logger
}

func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the snapshot file. A missing file is the normal cold-start
// case and yields an empty set. An unreadable or corrupt file also yields
// an empty set: the scan must keep running, and the next report simply
// covers a shorter window. Load never fails.
func (s *Store) Load() map[string]struct{} {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("no snapshot file, starting with empty set", zap.String("path", s.path))
			return map[string]struct{}{}
		}
		s.logger.Error("failed to read snapshot file, treating as empty; previous window state is lost",
			zap.String("path", s.path), zap.Error(err))
		return map[string]struct{}{}
	}

	var symbols []string
	if err := json.Unmarshal(data, &symbols); err != nil {
		s.logger.Error("corrupt snapshot file, treating as empty; previous window state is lost",
			zap.String("path", s.path), zap.Error(err))
		return map[string]struct{}{}
	}

	set := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		set[sym] = struct{}{}
	}
	return set
}

// Save overwrites the snapshot file with the given set, sorted for a
// stable, diff-friendly file. Write failures are logged and swallowed:
// losing a persistence write must not take down the scan.
func (s *Store) Save(symbols map[string]struct{}) {
	sorted := make([]string, 0, len(symbols))
	for sym := range symbols {
		sorted = append(sorted, sym)
	}
	sort.Strings(sorted)

	data, err := json.MarshalIndent(sorted, "", "    ")
	if err != nil {
		s.logger.Error("failed to encode snapshot", zap.Error(err))
		return
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.logger.Error("failed to write snapshot file",
			zap.String("path", s.path), zap.Error(err))
	}
}
