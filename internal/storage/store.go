package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	metadataFile = "metadata.json"
	outputFile   = "output.txt"
	profileFile  = "profile.csv"
)

// ErrInvalidID indicates a render id that could escape the store directory.
var ErrInvalidID = errors.New("storage: invalid render id")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RenderMetadata struct {
	ID           string             `json:"id"`
	Source       string             `json:"source"`
	Timestamp    time.Time          `json:"timestamp"`
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	Stretch      float64            `json:"stretch"`
	Mode         string             `json:"mode"`
	Predicate    string             `json:"predicate"`
	Interpolator string             `json:"interpolator"`
	Async        bool               `json:"async"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes metadata.json, output.txt and profile.csv into a new render
// directory and returns its id. meta.ID and meta.Timestamp are assigned
// here.
func (s *Store) Save(meta RenderMetadata, text string, profile []float64) (string, error) {
	now := time.Now()
	id := fmt.Sprintf("%s_%d", slug(meta.Source), now.UnixNano())
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta.ID = id
	meta.Timestamp = now

	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, outputFile), []byte(text), 0644); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, profileFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"row", "ink"}); err != nil {
		return "", err
	}
	for i, v := range profile {
		if err := w.Write([]string{strconv.Itoa(i), strconv.FormatFloat(v, 'f', -1, 64)}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return id, nil
}

// List returns every readable render, oldest first.
func (s *Store) List() ([]RenderMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RenderMetadata{}, nil
		}
		return nil, err
	}

	renders := make([]RenderMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		renders = append(renders, *meta)
	}

	sort.Slice(renders, func(i, j int) bool {
		return renders[i].Timestamp.Before(renders[j].Timestamp)
	})
	return renders, nil
}

func (s *Store) Load(id string) (*RenderMetadata, error) {
	dir, err := s.dir(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RenderMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadText(id string) (string, error) {
	dir, err := s.dir(id)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(dir, outputFile))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadProfile returns the per-row ink counts recorded with a render.
func (s *Store) LoadProfile(id string) ([]float64, error) {
	dir, err := s.dir(id)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(dir, profileFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []float64{}, nil
	}

	profile := make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		profile = append(profile, v)
	}
	return profile, nil
}

func (s *Store) Delete(id string) error {
	dir, err := s.dir(id)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); err != nil {
		return err
	}
	return os.RemoveAll(dir)
}

func (s *Store) dir(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(s.baseDir, id), nil
}

// slug turns a file path or URL into a short id prefix.
func slug(source string) string {
	if i := strings.IndexAny(source, "?#"); i >= 0 {
		source = source[:i]
	}
	base := path.Base(filepath.ToSlash(source))
	base = strings.TrimSuffix(base, path.Ext(base))

	var sb strings.Builder
	for _, r := range strings.ToLower(base) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			sb.WriteRune(r)
		case sb.Len() > 0 && !strings.HasSuffix(sb.String(), "-"):
			sb.WriteByte('-')
		}
		if sb.Len() >= 32 {
			break
		}
	}
	s := strings.Trim(sb.String(), "-")
	if s == "" {
		return "render"
	}
	return s
}
