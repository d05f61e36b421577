package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/gogpu/logicsim"
)

// Store errors.
var (
	// ErrProjectNotFound is returned when a named project does not exist.
	ErrProjectNotFound = errors.New("project: not found")

	// ErrProjectExists is returned when a rename target is already taken.
	ErrProjectExists = errors.New("project: already exists")

	// ErrInvalidName is returned for empty names or names with path
	// separators.
	ErrInvalidName = errors.New("project: invalid name")
)

// DefaultDir is the store location used when none is configured.
const DefaultDir = "~/.logicsim"

const (
	settingsFile = "settings.toml"
	projectsDir  = "projects"
	projectExt   = ".yaml"
)

// Store persists settings and projects below a directory:
//
//	<dir>/settings.toml
//	<dir>/projects/<name>.yaml
type Store struct {
	dir string
}

// Open returns a store rooted at dir, creating it if needed. A leading "~"
// is expanded to the home directory; an empty dir selects DefaultDir.
func Open(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, fmt.Errorf("project: resolve store dir %q: %w", dir, err)
	}
	if err := os.MkdirAll(filepath.Join(expanded, projectsDir), 0o755); err != nil {
		return nil, fmt.Errorf("project: create store: %w", err)
	}
	return &Store{dir: expanded}, nil
}

// Dir returns the store root.
func (s *Store) Dir() string { return s.dir }

// SettingsPath returns the settings file location.
func (s *Store) SettingsPath() string { return filepath.Join(s.dir, settingsFile) }

// ProjectPath returns the file a project is stored in.
func (s *Store) ProjectPath(name string) string {
	return filepath.Join(s.dir, projectsDir, name+projectExt)
}

// LoadSettings reads the settings file. A missing file yields the defaults;
// a corrupt one is logged and also yields the defaults.
func (s *Store) LoadSettings() (Settings, error) {
	data, err := os.ReadFile(s.SettingsPath())
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return DefaultSettings(), fmt.Errorf("project: read settings: %w", err)
	}
	settings, err := UnmarshalSettings(data)
	if err != nil {
		logicsim.Logger().Warn("project: failed to parse settings, using defaults",
			"path", s.SettingsPath(), "error", err)
		return DefaultSettings(), nil
	}
	return settings, nil
}

// SaveSettings writes the settings file.
func (s *Store) SaveSettings(settings Settings) error {
	data, err := MarshalSettings(settings)
	if err != nil {
		return fmt.Errorf("project: encode settings: %w", err)
	}
	if err := writeFile(s.SettingsPath(), data); err != nil {
		return fmt.Errorf("project: save settings: %w", err)
	}
	logicsim.Logger().Info("project: saved settings", "path", s.SettingsPath())
	return nil
}

// ListProjects returns the stored project names in lexical order.
func (s *Store) ListProjects() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, projectsDir))
	if err != nil {
		return nil, fmt.Errorf("project: list: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), projectExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), projectExt))
	}
	sort.Strings(names)
	return names, nil
}

// LoadProject reads a project by name.
func (s *Store) LoadProject(name string) (*Project, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.ProjectPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("project: load %q: %w", name, err)
	}
	p, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("project: load %q: %w", name, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	logicsim.Logger().Info("project: loaded", "name", name, "scenes", len(p.Scenes))
	return p, nil
}

// SaveProject writes p under name, replacing any previous version.
func (s *Store) SaveProject(name string, p *Project) error {
	if err := validName(name); err != nil {
		return err
	}
	p.Name = name
	data, err := Marshal(p)
	if err != nil {
		return fmt.Errorf("project: encode %q: %w", name, err)
	}
	if err := writeFile(s.ProjectPath(name), data); err != nil {
		return fmt.Errorf("project: save %q: %w", name, err)
	}
	logicsim.Logger().Info("project: saved", "name", name, "path", s.ProjectPath(name))
	return nil
}

// DeleteProject removes a project.
func (s *Store) DeleteProject(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	err := os.Remove(s.ProjectPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("project: delete %q: %w", name, err)
	}
	return nil
}

// RenameProject moves a project to a new name. The stored project name is
// updated as well.
func (s *Store) RenameProject(name, newName string) error {
	if err := validName(newName); err != nil {
		return err
	}
	p, err := s.LoadProject(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(s.ProjectPath(newName)); err == nil {
		return fmt.Errorf("%w: %q", ErrProjectExists, newName)
	}
	if err := s.SaveProject(newName, p); err != nil {
		return err
	}
	return s.DeleteProject(name)
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// writeFile replaces path atomically through a temporary file.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
