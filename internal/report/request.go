// Package report implements the analytics run: input validation, signal
// aggregation and resampling, CSV artifacts, and the HTML report.
package report

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/repostats/internal/snapshot"
)

// ErrNoViewsClonesData is returned when neither the snapshot directory nor
// an explicit aggregate input provides any views/clones data.
var ErrNoViewsClonesData = errors.New("unexpected: no data for views/clones")

// Request describes one invocation. It is built once from the command line
// and never mutated.
type Request struct {
	// RepoSpec is the owner/name repository identifier.
	RepoSpec string
	// SnapshotDir holds views/clones fragments and top-N snapshots.
	SnapshotDir string
	// ResourcesDir is copied into the output directory when present.
	ResourcesDir string
	// OutputDir receives the HTML report; recreated per run.
	OutputDir string

	ViewsClonesInPath  string
	ViewsClonesOutPath string

	StargazerInPath  string
	StargazerOutPath string

	ForkInPath  string
	ForkOutPath string

	DeleteFragments  bool
	ArchiveFragments bool
}

// Availability records which signals a validated request can serve.
type Availability struct {
	// FragmentPaths are the views/clones fragment files found in the
	// snapshot directory.
	FragmentPaths []string

	ViewsClones bool
	Stars       bool
	Forks       bool
}

// Validate resolves data availability per signal. Star and fork inputs are
// independently optional, and a resampled output path without a matching
// input is tolerated. Views/clones data is required: when neither fragments
// nor an aggregate input path are present the request is rejected.
func (r Request) Validate() (Availability, error) {
	fragments, err := snapshot.DiscoverFragments(r.SnapshotDir)
	if err != nil {
		return Availability{}, fmt.Errorf("scan snapshot directory: %w", err)
	}

	av := Availability{
		FragmentPaths: fragments,
		Stars:         r.StargazerInPath != "",
		Forks:         r.ForkInPath != "",
		ViewsClones:   len(fragments) > 0 || r.ViewsClonesInPath != "",
	}

	if !av.ViewsClones {
		return av, ErrNoViewsClonesData
	}

	return av, nil
}
