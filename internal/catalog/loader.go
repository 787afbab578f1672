package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/clinassist/decision-worker/internal/tree"
)

// fileEntry is the on-disk shape of a catalog entry.
type fileEntry struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Inputs      []Input   `yaml:"inputs"`
	Tree        yaml.Node `yaml:"tree"`
}

// LoadDir reads additional catalog entries from *.yaml / *.yml files in
// dir. Trees ship as data so domain experts can author and review branching
// logic without writing code.
func LoadDir(dir string, parser *tree.Parser, logger *zap.Logger) ([]*Entry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read trees directory: %w", err)
	}

	var entries []*Entry
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(f.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, f.Name())
		entry, err := loadFile(path, parser)
		if err != nil {
			return nil, fmt.Errorf("tree file %s: %w", f.Name(), err)
		}

		logger.Info("loaded tree",
			zap.String("entry", entry.Name),
			zap.String("file", f.Name()),
		)
		entries = append(entries, entry)
	}

	return entries, nil
}

func loadFile(path string, parser *tree.Parser) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var fe fileEntry
	if err := yaml.Unmarshal(data, &fe); err != nil {
		return nil, fmt.Errorf("failed to parse entry: %w", err)
	}
	if fe.Name == "" {
		return nil, fmt.Errorf("entry has no name")
	}
	if fe.Tree.Kind == 0 {
		return nil, fmt.Errorf("entry %q has no tree", fe.Name)
	}

	root, err := parser.ParseNode(&fe.Tree)
	if err != nil {
		return nil, err
	}

	return &Entry{
		Name:        fe.Name,
		Description: fe.Description,
		Inputs:      fe.Inputs,
		Tree:        tree.New(root),
	}, nil
}
