// Package repo persists trade records as YAML files: strategies/ holds
// open trades, archive/ holds closed ones, logs/ holds the per-trade
// daily CSV logs. Records are never deleted, only archived.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"optrack/options"
)

var (
	ErrNotFound      = errors.New("trade not found")
	ErrAlreadyClosed = errors.New("trade already closed")
	ErrExists        = errors.New("trade record already exists")
)

type Repo struct {
	StrategiesDir string
	ArchiveDir    string
	LogsDir       string
}

func New(strategiesDir, archiveDir, logsDir string) (*Repo, error) {
	r := &Repo{
		StrategiesDir: strategiesDir,
		ArchiveDir:    archiveDir,
		LogsDir:       logsDir,
	}
	for _, dir := range []string{strategiesDir, archiveDir, logsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return r, nil
}

// Entry pairs a trade with its record filename.
type Entry struct {
	File  string
	Trade *options.Trade
}

// Load reads an open trade record by filename. A record that exists
// only in the archive is reported as already closed.
func (r *Repo) Load(file string) (*options.Trade, error) {
	t, err := readTrade(filepath.Join(r.StrategiesDir, file))
	if err == nil {
		return t, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	if _, aerr := os.Stat(filepath.Join(r.ArchiveDir, file)); aerr == nil {
		return nil, fmt.Errorf("%s: %w", file, ErrAlreadyClosed)
	}
	return nil, fmt.Errorf("%s: %w", file, ErrNotFound)
}

// LoadArchived reads a closed trade record from the archive.
func (r *Repo) LoadArchived(file string) (*options.Trade, error) {
	t, err := readTrade(filepath.Join(r.ArchiveDir, file))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", file, ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

// Save writes an open trade record.
func (r *Repo) Save(file string, t *options.Trade) error {
	return writeTrade(filepath.Join(r.StrategiesDir, file), t)
}

// Exists reports whether an open record with this filename exists.
func (r *Repo) Exists(file string) bool {
	_, err := os.Stat(filepath.Join(r.StrategiesDir, file))
	return err == nil
}

// Create writes a new trade record, refusing to overwrite an existing
// one so that re-parsing the same export is idempotent.
func (r *Repo) Create(t *options.Trade) (string, error) {
	file := t.FileName()
	if r.Exists(file) {
		return file, fmt.Errorf("record %s: %w", file, ErrExists)
	}
	if _, err := os.Stat(filepath.Join(r.ArchiveDir, file)); err == nil {
		return file, fmt.Errorf("record %s: %w", file, ErrAlreadyClosed)
	}
	return file, r.Save(file, t)
}

// List returns open trade records, optionally filtered by status,
// sorted by filename.
func (r *Repo) List(statusFilter string) ([]Entry, error) {
	return listDir(r.StrategiesDir, statusFilter)
}

// ListArchived returns archived (closed) trade records.
func (r *Repo) ListArchived() ([]Entry, error) {
	return listDir(r.ArchiveDir, "")
}

// Archive moves a trade record and its daily log out of the active
// set.
func (r *Repo) Archive(file string, t *options.Trade) error {
	if err := writeTrade(filepath.Join(r.ArchiveDir, file), t); err != nil {
		return err
	}

	logName := logFileName(file)
	src := filepath.Join(r.LogsDir, logName)
	if _, err := os.Stat(src); err == nil {
		if err := os.Rename(src, filepath.Join(r.ArchiveDir, logName)); err != nil {
			return fmt.Errorf("move log %s: %w", logName, err)
		}
	}

	active := filepath.Join(r.StrategiesDir, file)
	if err := os.Remove(active); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", file, err)
	}
	return nil
}

// LogPath returns the daily log path for a trade record.
func (r *Repo) LogPath(file string) string {
	return filepath.Join(r.LogsDir, logFileName(file))
}

func logFileName(file string) string {
	return strings.TrimSuffix(file, ".yaml") + ".csv"
}

func listDir(dir, statusFilter string) ([]Entry, error) {
	names, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var entries []Entry
	for _, de := range names {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".yaml") {
			continue
		}
		t, err := readTrade(filepath.Join(dir, de.Name()))
		if err != nil {
			return nil, err
		}
		if statusFilter != "" && t.Status != statusFilter {
			continue
		}
		entries = append(entries, Entry{File: de.Name(), Trade: t})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].File < entries[j].File })
	return entries, nil
}

func readTrade(path string) (*options.Trade, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t := &options.Trade{}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

func writeTrade(path string, t *options.Trade) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal trade: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
