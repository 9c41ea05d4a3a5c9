// SPDX-License-Identifier: MIT

package cohort

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Source resolves the matrix resource of one entity.
// Implementations return an error matching ErrMissingResource (or
// fs.ErrNotExist) when the entity has no resource.
type Source interface {
	Open(id string) (io.ReadCloser, error)
}

// Default BIDS derivative layout.
const (
	DefaultSubjectPrefix = "sub-"
	DefaultSubDir        = "dwi/connectome"
	DefaultConnectome    = "whole_brain_10M_sift2_space-anat_thalamus_lobes_connectome.csv"
)

// DirSource reads <SubjectPrefix><id>/<SubDir>/<Connectome> from an fs.FS.
type DirSource struct {
	FS            fs.FS
	SubjectPrefix string
	SubDir        string
	Connectome    string
}

// NewDirSource returns a DirSource with the default subject layout.
// An empty connectome selects DefaultConnectome.
func NewDirSource(fsys fs.FS, connectome string) *DirSource {
	if connectome == "" {
		connectome = DefaultConnectome
	}

	return &DirSource{
		FS:            fsys,
		SubjectPrefix: DefaultSubjectPrefix,
		SubDir:        DefaultSubDir,
		Connectome:    connectome,
	}
}

// Path returns the slash-separated resource path of id inside FS.
func (s *DirSource) Path(id string) string {
	return path.Join(s.SubjectPrefix+id, s.SubDir, s.Connectome)
}

// Open opens the resource of id. A missing file maps to ErrMissingResource.
func (s *DirSource) Open(id string) (io.ReadCloser, error) {
	f, err := s.FS.Open(s.Path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", s.Path(id), ErrMissingResource)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path(id), err)
	}

	return f, nil
}

// Discover lists entity identifiers from the top-level subject directories,
// sorted lexically. Directories without the resource are still listed; Load
// reports them as skipped.
func (s *DirSource) Discover() ([]string, error) {
	entries, err := fs.ReadDir(s.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	ids := lo.FilterMap(entries, func(e fs.DirEntry, _ int) (string, bool) {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), s.SubjectPrefix) {
			return "", false
		}
		id := strings.TrimPrefix(e.Name(), s.SubjectPrefix)
		return id, id != ""
	})
	sort.Strings(ids)

	return ids, nil
}

// ReadIDList reads one identifier per line. Blank lines and lines starting
// with '#' are ignored; a leading subject prefix "sub-" is stripped.
func ReadIDList(r io.Reader) ([]string, error) {
	var ids []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, strings.TrimPrefix(line, DefaultSubjectPrefix))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read id list: %w", err)
	}

	return lo.Uniq(ids), nil
}

// Exclude returns ids without the identifiers listed in drop, preserving order.
func Exclude(ids, drop []string) []string {
	return lo.Without(ids, drop...)
}
