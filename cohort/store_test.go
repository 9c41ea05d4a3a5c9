// SPDX-License-Identifier: MIT

package cohort_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/connstat/cohort"
	"github.com/katalvlaran/connstat/matrix"
)

const connectome = "conn.csv"

// subjectFS builds a BIDS-like tree with one matrix file per id.
func subjectFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for id, body := range files {
		fsys["sub-"+id+"/dwi/connectome/"+connectome] = &fstest.MapFile{Data: []byte(body)}
	}

	return fsys
}

const (
	m2a = "0,1\n1,0\n"
	m2b = "0,2\n2,0\n"
	m3  = "0,1,2\n1,0,3\n2,3,0\n"
)

func TestLoad_PartitionPreservesOrder(t *testing.T) {
	g := NewWithT(t)
	fsys := subjectFS(map[string]string{
		"NENAHC001": m2a, "NENAHP002": m2b, "NENAHC003": m2b, "NENAHP004": m2a,
	})
	store := cohort.NewStore(cohort.NewDirSource(fsys, connectome), cohort.ContainsMarker("C"), cohort.WithWorkers(3))

	ids := []string{"NENAHP004", "NENAHC003", "NENAHP002", "NENAHC001", "NENAHP004"}
	cases, controls, report, err := store.Load(context.Background(), ids)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cases.Label).To(Equal(cohort.LabelCase))
	g.Expect(cases.IDs()).To(Equal([]string{"NENAHP004", "NENAHP002"}))
	g.Expect(controls.IDs()).To(Equal([]string{"NENAHC003", "NENAHC001"}))
	g.Expect(report.Requested).To(HaveLen(4))
	g.Expect(report.Skipped).To(BeEmpty())
	g.Expect(report.Reshaped).To(BeEmpty())
	g.Expect(report.Dim).To(Equal(2))
	g.Expect(controls.Dim()).To(Equal(2))
}

func TestLoad_MissingResourceSkipped(t *testing.T) {
	g := NewWithT(t)
	fsys := subjectFS(map[string]string{"A1": m2a, "C1": m2a, "C2": m2b})
	fsys["sub-A2/dwi/other.txt"] = &fstest.MapFile{Data: []byte("x")}

	logger, hook := test.NewNullLogger()
	store := cohort.NewStore(cohort.NewDirSource(fsys, connectome), cohort.HasPrefix("C"), cohort.WithLogger(logger))

	cases, controls, report, err := store.Load(context.Background(), []string{"A1", "A2", "C1", "C2"})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(report.Skipped).To(ConsistOf("A2"))
	g.Expect(cases.Size()).To(Equal(1))
	g.Expect(controls.Size()).To(Equal(2))

	warned := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["entity"] == "A2" {
			warned = true
		}
	}
	g.Expect(warned).To(BeTrue())
}

func TestLoad_ReshapeToTarget(t *testing.T) {
	fsys := subjectFS(map[string]string{"A1": m3, "C1": m2a})
	store := cohort.NewStore(cohort.NewDirSource(fsys, connectome), cohort.HasPrefix("C"), cohort.WithTargetShape(2))

	cases, controls, report, err := store.Load(context.Background(), []string{"A1", "C1"})
	require.NoError(t, err)
	require.Equal(t, []cohort.Reshape{{ID: "A1", FromRows: 3, FromCols: 3, To: 2}}, report.Reshaped)

	a := cases.Entities[0].Matrix
	require.Equal(t, 2, a.Rows())
	v, err := a.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
	require.NoError(t, controls.Validate())
}

func TestLoad_InferShapeFromFirstSquare(t *testing.T) {
	fsys := subjectFS(map[string]string{"A1": "1,2,3\n", "A2": m3, "C1": m2a})
	store := cohort.NewStore(cohort.NewDirSource(fsys, connectome), cohort.HasPrefix("C"))

	cases, controls, report, err := store.Load(context.Background(), []string{"A1", "A2", "C1"})
	require.NoError(t, err)
	require.Equal(t, 3, report.Dim)
	require.Equal(t, 3, cases.Dim())
	require.Equal(t, 3, controls.Dim())
	require.Len(t, report.Reshaped, 2) // the 1x3 row and the 2x2 control
}

func TestLoad_EmptyCohortIsFatal(t *testing.T) {
	fsys := subjectFS(map[string]string{"A1": m2a, "A2": m2b})
	store := cohort.NewStore(cohort.NewDirSource(fsys, connectome), cohort.HasPrefix("C"))

	_, _, report, err := store.Load(context.Background(), []string{"A1", "A2", "C9"})
	require.ErrorIs(t, err, cohort.ErrEmptyCohort)
	require.Contains(t, err.Error(), cohort.LabelControl)
	require.Equal(t, []string{"C9"}, report.Skipped)

	_, _, _, err = store.Load(context.Background(), []string{"X", "Y"})
	require.ErrorIs(t, err, cohort.ErrEmptyCohort)

	_, _, _, err = store.Load(context.Background(), nil)
	require.ErrorIs(t, err, cohort.ErrNoEntities)
}

func TestLoad_MalformedIsFatal(t *testing.T) {
	fsys := subjectFS(map[string]string{"A1": m2a, "C1": "0,1\n1\n"})
	store := cohort.NewStore(cohort.NewDirSource(fsys, connectome), cohort.HasPrefix("C"))

	_, _, _, err := store.Load(context.Background(), []string{"A1", "C1"})
	require.ErrorIs(t, err, matrix.ErrMalformed)
	require.Contains(t, err.Error(), "C1")
}

func TestLoad_Cancelled(t *testing.T) {
	fsys := subjectFS(map[string]string{"A1": m2a, "C1": m2a})
	store := cohort.NewStore(cohort.NewDirSource(fsys, connectome), cohort.HasPrefix("C"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, _, err := store.Load(ctx, []string{"A1", "C1"})
	require.ErrorIs(t, err, context.Canceled)
}

// failingSource returns a non-missing error for every id.
type failingSource struct{}

func (failingSource) Open(string) (io.ReadCloser, error) { return nil, errors.New("disk on fire") }

func TestLoad_SourceErrorIsFatal(t *testing.T) {
	store := cohort.NewStore(failingSource{}, cohort.HasPrefix("C"))
	_, _, _, err := store.Load(context.Background(), []string{"A1"})
	require.Error(t, err)
	require.NotErrorIs(t, err, cohort.ErrMissingResource)
}

func TestNewStore_Panics(t *testing.T) {
	require.Panics(t, func() { cohort.NewStore(nil, cohort.HasPrefix("C")) })
	require.Panics(t, func() { cohort.NewStore(failingSource{}, nil) })
	require.Panics(t, func() { cohort.WithWorkers(0) })
	require.Panics(t, func() { cohort.WithTargetShape(-1) })
}

func TestDirSource_DiscoverAndPath(t *testing.T) {
	g := NewWithT(t)
	fsys := subjectFS(map[string]string{"B": m2a, "A": m2a})
	fsys["README"] = &fstest.MapFile{Data: []byte("x")}
	fsys["derivatives/x"] = &fstest.MapFile{Data: []byte("x")}

	src := cohort.NewDirSource(fsys, connectome)
	ids, err := src.Discover()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ids).To(Equal([]string{"A", "B"}))
	g.Expect(src.Path("A")).To(Equal("sub-A/dwi/connectome/conn.csv"))
	g.Expect(cohort.NewDirSource(fsys, "").Connectome).To(Equal(cohort.DefaultConnectome))

	_, err = src.Open("Z")
	g.Expect(errors.Is(err, cohort.ErrMissingResource)).To(BeTrue())
}

func TestReadIDListAndExclude(t *testing.T) {
	in := "# skipped subjects\nsub-A\n\nB\nA\n"
	drop, err := cohort.ReadIDList(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, drop)
	require.Equal(t, []string{"C", "D"}, cohort.Exclude([]string{"A", "C", "B", "D"}, drop))
}
