// Package registry locates and decodes the suite document that declares
// the tests to grade. Malformed or unknown shapes are rejected here, at
// the boundary, before any test executes.
package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gradebot/autograder/types"
)

// Registry holds the decoded, validated test suite.
type Registry struct {
	config Config
	suite  types.Suite
}

// Config contains registry configuration
type Config struct {
	Log       *zap.SugaredLogger
	SuiteFile string
}

// NewRegistry loads the suite file and validates it.
func NewRegistry(cfg Config) (*Registry, error) {
	if cfg.SuiteFile == "" {
		return nil, fmt.Errorf("suite file is required")
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop().Sugar()
	}

	r := &Registry{config: cfg}
	if err := r.loadSuite(cfg.SuiteFile); err != nil {
		return nil, fmt.Errorf("failed to load suite: %w", err)
	}

	cfg.Log.Debugw("Registry loaded", "suite_file", cfg.SuiteFile, "tests", len(r.suite.Tests))

	return r, nil
}

// Suite returns the decoded suite. Test order is declaration order.
func (r *Registry) Suite() types.Suite {
	return r.suite
}

// SuiteName derives a display name for the suite from the file path.
func (r *Registry) SuiteName() string {
	base := filepath.Base(r.config.SuiteFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (r *Registry) loadSuite(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading suite file: %w", err)
	}

	suite, err := decodeSuite(path, data)
	if err != nil {
		return fmt.Errorf("parsing suite file: %w", err)
	}

	if err := validateSuite(suite); err != nil {
		return fmt.Errorf("invalid suite: %w", err)
	}

	r.suite = *suite
	return nil
}

// decodeSuite picks the decoder from the file extension. JSON documents
// are decoded strictly: unknown fields are an error.
func decodeSuite(path string, data []byte) (*types.Suite, error) {
	var suite types.Suite
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&suite); err != nil {
			return nil, err
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&suite); err != nil {
			return nil, err
		}
	}
	return &suite, nil
}

func validateSuite(suite *types.Suite) error {
	if len(suite.Tests) == 0 {
		return fmt.Errorf("suite declares no tests")
	}
	for i, tc := range suite.Tests {
		if strings.TrimSpace(tc.Run) == "" {
			return fmt.Errorf("test %d (%q): run command is required", i, tc.Name)
		}
		if tc.Timeout < 0 {
			return fmt.Errorf("test %d (%q): timeout must be positive", i, tc.Name)
		}
		if tc.Points != nil && *tc.Points < 0 {
			return fmt.Errorf("test %d (%q): points must be non-negative", i, tc.Name)
		}
		if tc.Comparison != "" && !tc.Comparison.Valid() {
			return fmt.Errorf("test %d (%q): unknown comparison mode %q", i, tc.Name, tc.Comparison)
		}
	}
	return nil
}
