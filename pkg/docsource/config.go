package docsource

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/tvgraph/pkg/validation"
)

// BundleConfig is the "source" mapping of the CLI config: either
// {graph: path, nodes?: path} or a document-source bundle carrying
// primaryKey. Decoded with gopkg.in/yaml.v3 and validated with
// go-playground/validator/v10.
type BundleConfig struct {
	// Graph/Nodes select the flat-file source read by pkg/format's
	// line-oriented loaders.
	Graph string `yaml:"graph,omitempty"`
	Nodes string `yaml:"nodes,omitempty"`

	// PrimaryKey selects the document-source bundle; its presence
	// distinguishes this form from the flat-file one.
	PrimaryKey  []string `yaml:"primaryKey,omitempty"`
	MaxDistance int      `yaml:"maxDistance,omitempty" validate:"omitempty,min=0"`
	SumWeights  bool     `yaml:"sumWeights,omitempty"`
	BatchSize   int      `yaml:"batchSize,omitempty" validate:"omitempty,min=1"`
}

// IsDocumentSource reports whether the config selects the document-source
// form. Cross-field structure (either Graph or PrimaryKey) can't be
// expressed with struct tags across differently-typed fields, so
// LoadConfig composes the tag pass with a fluent ConfigValidator chain.
func (c BundleConfig) IsDocumentSource() bool { return len(c.PrimaryKey) > 0 }

// Config is the full CLI config. NodeTypes/DefaultColor/
// EdgeWeight/NodeSize are presentation-layer fields belonging to the
// out-of-scope visualization collaborator; they are decoded and passed
// through unopinionated (never interpreted by this package).
type Config struct {
	Source       BundleConfig   `yaml:"source" validate:"required"`
	NodeTypes    map[string]any `yaml:"nodeTypes,omitempty"`
	DefaultColor string         `yaml:"defaultColor,omitempty"`
	EdgeWeight   string         `yaml:"edgeWeight,omitempty"`
	NodeSize     string         `yaml:"nodeSize,omitempty"`
}

// LoadConfig reads and validates a CLI config file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("docsource: read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("docsource: parse config: %w", err)
	}
	if err := validation.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("docsource: invalid config: %w", err)
	}
	cv := validation.NewConfigValidator("source").
		RequireEither("graph", cfg.Source.Graph != "", "primaryKey", cfg.Source.IsDocumentSource()).
		When(cfg.Source.IsDocumentSource(), func(v *validation.ConfigValidator) {
			v.NonNegative("maxDistance", cfg.Source.MaxDistance)
			if cfg.Source.BatchSize != 0 {
				v.RangeInt("batchSize", cfg.Source.BatchSize, validation.MinBatchSize, validation.MaxBatchSize)
			}
		})
	if err := cv.Validate(); err != nil {
		return nil, fmt.Errorf("docsource: invalid config: %w", err)
	}
	return &cfg, nil
}
