package report

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// MetadataFileName is the run metadata file within the output directory.
const MetadataFileName = "report.yaml"

// Metadata records what a report was generated from.
type Metadata struct {
	Repo        string         `yaml:"repo"`
	GeneratedAt time.Time      `yaml:"generated_at"`
	Samples     map[string]int `yaml:"sample_counts"`
}

func newMetadata(repoSpec string, inputs pageInputs) Metadata {
	return Metadata{
		Repo:        repoSpec,
		GeneratedAt: time.Now().UTC(),
		Samples: map[string]int{
			"views_clones":  len(inputs.traffic),
			"stars":         len(inputs.stars),
			"forks":         len(inputs.forks),
			"top_referrers": len(inputs.topReferrers),
			"top_paths":     len(inputs.topPaths),
		},
	}
}

func writeMetadata(path string, meta Metadata) error {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	return nil
}
