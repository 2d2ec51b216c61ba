package artifact

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/klauspost/compress/zip"
)

var (
	ErrUnknownArtifact = errors.New("unknown input artifact")
	ErrArtifactType    = errors.New("unsupported artifact type")
	ErrReadArtifact    = errors.New("unreadable input artifact")
	ErrMissingFile     = errors.New("file not in artifact")
)

// Artifact is a named zip archive of input files.
type Artifact struct {
	Name     string
	Location string

	rc    *zip.ReadCloser
	files map[string]*zip.File
}

// ParseInput splits an input given as name=location.
func ParseInput(s string) (name, location string, err error) {
	name, location, ok := strings.Cut(s, "=")
	if !ok || name == "" || location == "" {
		return "", "", fmt.Errorf("%w: expected name=path, got %q", ErrReadArtifact, s)
	}
	return name, location, nil
}

// Open opens the zip archive at location, a file path or a file:// URL.
func Open(name, location string) (*Artifact, error) {
	path := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		if u.Scheme != "file" {
			return nil, fmt.Errorf("%w: Can't handle input artifact type %s", ErrArtifactType, u.Scheme)
		}
		path = u.Path
	}
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: Unable to read input artifact '%s' (%s): %w", ErrReadArtifact, name, location, err)
	}
	a := &Artifact{
		Name:     name,
		Location: location,
		rc:       rc,
		files:    make(map[string]*zip.File, len(rc.File)),
	}
	for _, f := range rc.File {
		a.files[f.Name] = f
	}
	return a, nil
}

func (a *Artifact) Has(filename string) bool {
	_, ok := a.files[filename]
	return ok
}

// ReadFile returns the contents of filename within the archive.
func (a *Artifact) ReadFile(filename string) ([]byte, error) {
	f, ok := a.files[filename]
	if !ok {
		return nil, fmt.Errorf("%w: %s::%s", ErrMissingFile, a.Name, filename)
	}
	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s::%s: %w", a.Name, filename, err)
	}
	defer r.Close()
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s::%s: %w", a.Name, filename, err)
	}
	return d, nil
}

func (a *Artifact) Close() error {
	return a.rc.Close()
}

// WriteZip writes a zip archive holding a single file.
func WriteZip(w io.Writer, filename string, data []byte) error {
	zw := zip.NewWriter(w)
	fw, err := zw.Create(filename)
	if err != nil {
		return err
	}
	if _, err := fw.Write(data); err != nil {
		return err
	}
	return zw.Close()
}
