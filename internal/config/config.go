// Package config loads message-format definitions from TOML files and
// assembles them into grammar trees.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	ErrNoNodes       = errors.New("config: format has no nodes")
	ErrUnknownKind   = errors.New("config: unknown node kind")
	ErrDuplicateID   = errors.New("config: duplicate node id")
	ErrDanglingChild = errors.New("config: child reference to unknown node")
	ErrNoRoot        = errors.New("config: no unreferenced root node")
	ErrManyRoots     = errors.New("config: more than one root node")
	ErrCycle         = errors.New("config: node tree contains a cycle")
	ErrBadValue      = errors.New("config: invalid node value")
)

// FormatConfig is one TOML format definition: a flat node list wired by id.
type FormatConfig struct {
	Name  string       `toml:"name"`
	Nodes []NodeConfig `toml:"nodes"`
}

// NodeConfig declares one grammar node.
type NodeConfig struct {
	ID       string   `toml:"id"`
	Kind     string   `toml:"kind"`
	Mutable  bool     `toml:"mutable"`
	Children []string `toml:"children"`
	Value    string   `toml:"value"` // hex, data nodes only
	MinSize  int      `toml:"min_size"`
	MaxSize  int      `toml:"max_size"`
	MinCount int      `toml:"min_count"` // repeat nodes only
	MaxCount int      `toml:"max_count"`
	Learn    bool     `toml:"learn"`
}

// Load reads and validates a format definition.
func Load(path string) (FormatConfig, error) {
	var cfg FormatConfig
	if err := loadToml(path, &cfg); err != nil {
		return FormatConfig{}, err
	}
	if cfg.Name == "" {
		cfg.Name = "format"
	}
	if err := Validate(cfg); err != nil {
		return FormatConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

// Validate checks node kinds, id uniqueness, child references, root
// uniqueness, and acyclicity.
func Validate(cfg FormatConfig) error {
	if len(cfg.Nodes) == 0 {
		return ErrNoNodes
	}

	byID := make(map[string]NodeConfig, len(cfg.Nodes))
	for _, n := range cfg.Nodes {
		if strings.TrimSpace(n.ID) == "" {
			return fmt.Errorf("%w: empty id", ErrBadValue)
		}
		if _, ok := byID[n.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, n.ID)
		}
		switch n.Kind {
		case "agg", "alt", "repeat", "data":
		default:
			return fmt.Errorf("%w: node %s has kind %q", ErrUnknownKind, n.ID, n.Kind)
		}
		byID[n.ID] = n
	}

	// Nodes own their children exclusively: a node referenced twice would
	// be shared between two parents, and a self- or back-reference is a
	// cycle. Requiring one reference per node plus full reachability from a
	// single root keeps the graph a strict tree.
	refs := make(map[string]int)
	for _, n := range cfg.Nodes {
		for _, child := range n.Children {
			if _, ok := byID[child]; !ok {
				return fmt.Errorf("%w: %s -> %s", ErrDanglingChild, n.ID, child)
			}
			refs[child]++
			if refs[child] > 1 || child == n.ID {
				return fmt.Errorf("%w: node %s", ErrCycle, child)
			}
		}
	}

	roots := 0
	root := ""
	for _, n := range cfg.Nodes {
		if refs[n.ID] == 0 {
			roots++
			root = n.ID
		}
	}
	if roots == 0 {
		return ErrNoRoot
	}
	if roots > 1 {
		return fmt.Errorf("%w: %d candidates", ErrManyRoots, roots)
	}

	if reachable(root, byID, make(map[string]bool)) != len(cfg.Nodes) {
		return fmt.Errorf("%w: unreachable nodes", ErrCycle)
	}
	return nil
}

func reachable(id string, byID map[string]NodeConfig, seen map[string]bool) int {
	if seen[id] {
		return 0
	}
	seen[id] = true
	count := 1
	for _, child := range byID[id].Children {
		count += reachable(child, byID, seen)
	}
	return count
}
