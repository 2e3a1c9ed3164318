package config

import (
	"os"

	domainConfig "github.com/keystone-lab/keystone/pkg/domain/model/config"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Analysis holds CLI flags for analysis tuning
type Analysis struct {
	configFile string
}

// Flags returns CLI flags for analysis tuning
func (a *Analysis) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "analysis-config",
			Usage:       "TOML file overriding factor weights, saturation constants and pool sizes",
			Sources:     cli.EnvVars("KEYSTONE_ANALYSIS_CONFIG"),
			Destination: &a.configFile,
		},
	}
}

// Configure loads the tuning file when given, otherwise the defaults
func (a *Analysis) Configure() (*domainConfig.AnalysisConfig, error) {
	if a.configFile == "" {
		return domainConfig.DefaultAnalysisConfig(), nil
	}
	return LoadAnalysisConfiguration(a.configFile)
}

// analysisFile is the TOML representation of the analysis tuning
type analysisFile struct {
	MatrixConcurrency int                `toml:"matrix-concurrency"`
	MaxTopicDomains   int                `toml:"max-topic-domains"`
	FactorWeights     map[string]float64 `toml:"factor-weights"`
	Saturations       map[string]int     `toml:"saturations"`
}

// Validate checks the tuning values
func (f *analysisFile) Validate() error {
	if f.MatrixConcurrency < 0 {
		return goerr.New("matrix-concurrency cannot be negative", goerr.V("value", f.MatrixConcurrency))
	}
	if f.MaxTopicDomains < 0 {
		return goerr.New("max-topic-domains cannot be negative", goerr.V("value", f.MaxTopicDomains))
	}
	for name, w := range f.FactorWeights {
		if _, err := types.ParseFactorType(name); err != nil {
			return goerr.Wrap(err, "unknown factor type in factor-weights", goerr.V("factor", name))
		}
		if w <= 0 {
			return goerr.New("factor weight must be positive", goerr.V("factor", name), goerr.V("weight", w))
		}
	}
	for name, s := range f.Saturations {
		if _, err := types.ParseFactorType(name); err != nil {
			return goerr.Wrap(err, "unknown factor type in saturations", goerr.V("factor", name))
		}
		if s < 1 {
			return goerr.New("saturation must be at least 1", goerr.V("factor", name), goerr.V("saturation", s))
		}
	}
	return nil
}

func (f *analysisFile) toDomain() *domainConfig.AnalysisConfig {
	cfg := domainConfig.DefaultAnalysisConfig()
	if f.MatrixConcurrency > 0 {
		cfg.MatrixConcurrency = f.MatrixConcurrency
	}
	if f.MaxTopicDomains > 0 {
		cfg.MaxTopicDomains = f.MaxTopicDomains
	}
	for name, w := range f.FactorWeights {
		cfg.FactorWeights[types.FactorType(name)] = w
	}
	for name, s := range f.Saturations {
		cfg.Saturations[types.FactorType(name)] = s
	}
	return cfg
}

// LoadAnalysisConfiguration loads analysis tuning from a TOML file
func LoadAnalysisConfiguration(path string) (*domainConfig.AnalysisConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read analysis config file", goerr.V("path", path))
	}

	var file analysisFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML analysis config", goerr.V("path", path))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "analysis config validation failed", goerr.V("path", path))
	}

	return file.toDomain(), nil
}
