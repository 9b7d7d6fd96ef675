package config

import (
	"encoding/hex"
	"fmt"

	"github.com/2cute2die/netzob/internal/format"
	"github.com/2cute2die/netzob/internal/grammar"
)

// Build assembles a validated format definition into a live format.
func Build(cfg FormatConfig) (*format.Format, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	byID := make(map[string]NodeConfig, len(cfg.Nodes))
	referenced := make(map[string]bool)
	for _, n := range cfg.Nodes {
		byID[n.ID] = n
		for _, child := range n.Children {
			referenced[child] = true
		}
	}

	rootID := ""
	for _, n := range cfg.Nodes {
		if !referenced[n.ID] {
			rootID = n.ID
		}
	}

	root, err := buildNode(rootID, byID)
	if err != nil {
		return nil, err
	}
	return format.New(cfg.Name, root)
}

func buildNode(id string, byID map[string]NodeConfig) (grammar.Node, error) {
	cfg := byID[id]

	switch cfg.Kind {
	case "agg", "alt":
		children := make([]grammar.Node, 0, len(cfg.Children))
		for _, childID := range cfg.Children {
			child, err := buildNode(childID, byID)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if cfg.Kind == "agg" {
			n := grammar.NewAgg(id, children...)
			n.SetMutable(cfg.Mutable)
			return n, nil
		}
		n := grammar.NewAlt(id, children...)
		n.SetMutable(cfg.Mutable)
		return n, nil

	case "repeat":
		if len(cfg.Children) != 1 {
			return nil, fmt.Errorf("%w: repeat %s needs exactly one child, has %d",
				ErrBadValue, id, len(cfg.Children))
		}
		child, err := buildNode(cfg.Children[0], byID)
		if err != nil {
			return nil, err
		}
		n := grammar.NewRepeat(id, child, cfg.MinCount, cfg.MaxCount)
		n.SetMutable(cfg.Mutable)
		return n, nil

	case "data":
		if len(cfg.Children) != 0 {
			return nil, fmt.Errorf("%w: data %s cannot have children", ErrBadValue, id)
		}
		if cfg.Value != "" {
			value, err := hex.DecodeString(cfg.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: data %s value is not hex: %v", ErrBadValue, id, err)
			}
			return grammar.NewData(id, value), nil
		}
		n := grammar.NewSizedData(id, cfg.MinSize, cfg.MaxSize)
		n.SetLearn(cfg.Learn)
		return n, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, cfg.Kind)
	}
}
