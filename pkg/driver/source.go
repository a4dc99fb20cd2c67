package driver

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/blake3"
)

// Source is program text ready for the interpreter.
type Source struct {
	Name     string
	Origin   string
	Text     string
	Checksum string
}

// NewSource wraps text, stamping it with a blake3 checksum.
func NewSource(name, origin, text string) *Source {
	return &Source{
		Name:     name,
		Origin:   origin,
		Text:     text,
		Checksum: Checksum([]byte(text)),
	}
}

// Checksum returns the hex blake3-256 digest of data.
func Checksum(data []byte) string {
	h := blake3.New()
	_, _ = h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// LoadFile reads a program from disk.
func LoadFile(path string) (*Source, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", path)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, errors.Wrap(err, "read source")
	}
	name := filepath.Base(absPath)
	return NewSource(name, absPath, string(data)), nil
}

// Loader resolves run targets against an optional manifest.
type Loader struct {
	manifest *Manifest
	log      logrus.FieldLogger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger routes loader diagnostics to logger.
func WithLogger(logger logrus.FieldLogger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.log = logger
		}
	}
}

// NewLoader builds a loader. manifest may be nil.
func NewLoader(manifest *Manifest, opts ...LoaderOption) *Loader {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	l := &Loader{manifest: manifest, log: discard}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves target as a manifest program name, then as a file path.
// An empty target selects the manifest's first program.
func (l *Loader) Load(ctx context.Context, target string) (*Source, error) {
	if target == "" {
		program, err := l.manifest.DefaultProgram()
		if err != nil {
			return nil, err
		}
		return l.LoadProgram(ctx, program)
	}
	if program, ok := l.manifest.FindProgram(target); ok {
		return l.LoadProgram(ctx, program)
	}
	l.log.WithField("path", target).Debug("loading source file")
	return LoadFile(target)
}

// LoadProgram fetches a manifest program from disk or git.
func (l *Loader) LoadProgram(ctx context.Context, program *ProgramSpec) (*Source, error) {
	if program == nil {
		return nil, fmt.Errorf("driver: nil program")
	}
	if program.IsGit() {
		l.log.WithFields(logrus.Fields{"program": program.Name, "git": program.Git}).Debug("fetching git program")
		return LoadGitSource(ctx, program)
	}
	if l.manifest == nil {
		return nil, fmt.Errorf("driver: program %s needs a manifest", program.Name)
	}
	path := filepath.Join(l.manifest.Dir(), filepath.FromSlash(program.Main))
	l.log.WithFields(logrus.Fields{"program": program.Name, "path": path}).Debug("loading program")
	src, err := LoadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "program %s", program.OriginalName)
	}
	src.Name = program.Name
	return src, nil
}
