package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project manifest looked up next to sources.
const ManifestFileName = "minilang.yml"

var (
	ErrManifestNotFound = errors.New("minilang.yml not found")
	ErrNoPrograms       = errors.New("manifest: no programs defined")
)

// Manifest represents the parsed contents of minilang.yml.
type Manifest struct {
	Path         string
	Name         string
	Settings     Settings
	Programs     map[string]*ProgramSpec
	ProgramOrder []string

	collisions []string
}

// Settings carries CLI defaults that flags may override.
type Settings struct {
	LogLevel string
	Color    ColorMode
}

// ColorMode selects when diagnostics are colorized.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the color mode is recognised.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// ProgramSpec names one runnable source. Main is relative to the manifest
// directory, or to the repository root when Git is set.
type ProgramSpec struct {
	Name         string
	OriginalName string
	Main         string
	Git          string
	Rev          string
	Tag          string
	Branch       string
}

// IsGit reports whether the program is fetched from a git repository.
func (p *ProgramSpec) IsGit() bool {
	return p != nil && p.Git != ""
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses minilang.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks up from start looking for minilang.yml.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}

// Dir returns the directory holding the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Settings.LogLevel != "" {
		if _, err := logrus.ParseLevel(m.Settings.LogLevel); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("settings.log_level: %v", err))
		}
	}
	if !m.Settings.Color.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("settings.color: unsupported mode %q", m.Settings.Color))
	}

	errs.Issues = append(errs.Issues, m.collisions...)
	for _, key := range m.ProgramOrder {
		program := m.Programs[key]
		for _, issue := range program.validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("programs.%s: %s", program.OriginalName, issue))
		}
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (p *ProgramSpec) validate() []string {
	var issues []string
	if p.Main == "" {
		issues = append(issues, "main must be provided")
	}
	revisions := 0
	for _, field := range []string{p.Rev, p.Tag, p.Branch} {
		if field != "" {
			revisions++
		}
	}
	switch {
	case p.Git == "" && revisions > 0:
		issues = append(issues, "rev, tag and branch require a git source")
	case p.Git != "" && revisions != 1:
		issues = append(issues, "git programs require exactly one of rev, tag, or branch")
	}
	if p.Git == "" && filepath.IsAbs(p.Main) {
		issues = append(issues, "main must be relative to the manifest")
	}
	return issues
}

// DefaultProgram returns the first program in manifest order.
func (m *Manifest) DefaultProgram() (*ProgramSpec, error) {
	if m == nil || len(m.ProgramOrder) == 0 {
		return nil, ErrNoPrograms
	}
	return m.Programs[m.ProgramOrder[0]], nil
}

// FindProgram looks up a program by sanitized or original name.
func (m *Manifest) FindProgram(name string) (*ProgramSpec, bool) {
	if m == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	if program, ok := m.Programs[sanitizeSegment(name)]; ok {
		return program, true
	}
	for _, key := range m.ProgramOrder {
		if program := m.Programs[key]; strings.EqualFold(program.OriginalName, name) {
			return program, true
		}
	}
	return nil, false
}

func sanitizeSegment(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

type manifestFile struct {
	Name     string       `yaml:"name"`
	Settings settingsYAML `yaml:"settings"`
	Programs programMap   `yaml:"programs"`
}

type settingsYAML struct {
	LogLevel string `yaml:"log_level"`
	Color    string `yaml:"color"`
}

type programYAML struct {
	Main   string `yaml:"main"`
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
}

type programMap struct {
	items []programMapEntry
}

type programMapEntry struct {
	name string
	spec *programYAML
}

func (pm *programMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		pm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: programs must be a mapping")
	}
	items := make([]programMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: programs must not use empty keys")
		}
		entry := new(programYAML)
		if valueNode.Kind == yaml.ScalarNode && valueNode.Tag != "!!null" {
			// Shorthand: `name: path/to/main.mini`.
			entry.Main = valueNode.Value
		} else if err := valueNode.Decode(entry); err != nil {
			return fmt.Errorf("manifest: program %q: %w", key, err)
		}
		items = append(items, programMapEntry{name: key, spec: entry})
	}
	pm.items = items
	return nil
}

func (mf manifestFile) toManifest(path string) *Manifest {
	color := ColorMode(strings.ToLower(strings.TrimSpace(mf.Settings.Color)))
	if color == "" {
		color = ColorAuto
	}
	result := &Manifest{
		Path: path,
		Name: sanitizeSegment(mf.Name),
		Settings: Settings{
			LogLevel: strings.TrimSpace(mf.Settings.LogLevel),
			Color:    color,
		},
		Programs:     make(map[string]*ProgramSpec, len(mf.Programs.items)),
		ProgramOrder: make([]string, 0, len(mf.Programs.items)),
	}
	for _, item := range mf.Programs.items {
		sanitized := sanitizeSegment(item.name)
		spec := &ProgramSpec{
			Name:         sanitized,
			OriginalName: item.name,
			Main:         strings.TrimSpace(item.spec.Main),
			Git:          strings.TrimSpace(item.spec.Git),
			Rev:          strings.TrimSpace(item.spec.Rev),
			Tag:          strings.TrimSpace(item.spec.Tag),
			Branch:       strings.TrimSpace(item.spec.Branch),
		}
		if existing, exists := result.Programs[sanitized]; exists {
			result.collisions = append(result.collisions, fmt.Sprintf("programs %q and %q collide after sanitization", existing.OriginalName, item.name))
			continue
		}
		result.Programs[sanitized] = spec
		result.ProgramOrder = append(result.ProgramOrder, sanitized)
	}
	return result
}
