package artifact

import (
	"errors"
	"fmt"

	"github.com/assemyaml/assemyaml/params"
)

// Set holds the input artifacts of a job in the order they were given.
type Set struct {
	arts   []*Artifact
	byName map[string]*Artifact
}

// OpenSet opens every input, each given as name=location. On error the
// artifacts already opened are closed.
func OpenSet(inputs []string) (*Set, error) {
	s := &Set{byName: map[string]*Artifact{}}
	for _, in := range inputs {
		name, loc, err := ParseInput(in)
		if err == nil {
			if _, dup := s.byName[name]; dup {
				err = fmt.Errorf("%w: duplicate input artifact %s", ErrReadArtifact, name)
			}
		}
		var a *Artifact
		if err == nil {
			a, err = Open(name, loc)
		}
		if err != nil {
			return nil, errors.Join(err, s.Close())
		}
		s.Add(a)
	}
	return s, nil
}

func (s *Set) Add(a *Artifact) {
	if s.byName == nil {
		s.byName = map[string]*Artifact{}
	}
	s.arts = append(s.arts, a)
	s.byName[a.Name] = a
}

func (s *Set) Len() int { return len(s.arts) }

func (s *Set) Artifacts() []*Artifact {
	return s.arts
}

// Get looks up the artifact named by ref on behalf of the user parameter
// param.
func (s *Set) Get(param string, ref params.Ref) (*Artifact, error) {
	a, ok := s.byName[ref.Artifact]
	if !ok {
		return nil, fmt.Errorf("%w: Invalid value for %s: unknown input artifact %s", ErrUnknownArtifact, param, ref.Artifact)
	}
	return a, nil
}

func (s *Set) ReadFile(param string, ref params.Ref) ([]byte, error) {
	a, err := s.Get(param, ref)
	if err != nil {
		return nil, err
	}
	return a.ReadFile(ref.Filename)
}

func (s *Set) Close() error {
	var errs []error
	for _, a := range s.arts {
		errs = append(errs, a.Close())
	}
	return errors.Join(errs...)
}
