package calc

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed units.yaml
var unitsYAML []byte

type unitDef struct {
	Factor  float64  `yaml:"factor"`
	Offset  float64  `yaml:"offset"`
	Aliases []string `yaml:"aliases"`
}

type dimensionDef struct {
	Base  string             `yaml:"base"`
	Units map[string]unitDef `yaml:"units"`
}

type unitTable struct {
	Dimensions map[string]dimensionDef `yaml:"dimensions"`
}

type unit struct {
	name      string
	dimension string
	factor    float64
	offset    float64
}

var (
	unitsOnce sync.Once
	unitIndex map[string]unit
	unitsErr  error
)

func loadUnits() (map[string]unit, error) {
	unitsOnce.Do(func() {
		var table unitTable
		if err := yaml.Unmarshal(unitsYAML, &table); err != nil {
			unitsErr = fmt.Errorf("failed to parse units table: %w", err)
			return
		}
		unitIndex = make(map[string]unit)
		for dim, def := range table.Dimensions {
			for name, u := range def.Units {
				entry := unit{name: name, dimension: dim, factor: u.Factor, offset: u.Offset}
				unitIndex[name] = entry
				for _, alias := range u.Aliases {
					unitIndex[strings.ToLower(alias)] = entry
				}
			}
		}
	})
	return unitIndex, unitsErr
}

// Convert converts value from one unit to another. Units may be given by
// canonical name or alias, case-insensitively. Converting between units of
// different dimensions is an error.
func Convert(value float64, from, to string) (float64, string, error) {
	index, err := loadUnits()
	if err != nil {
		return 0, "", err
	}

	src, ok := index[strings.ToLower(strings.TrimSpace(from))]
	if !ok {
		return 0, "", fmt.Errorf("unknown unit: %s", from)
	}
	dst, ok := index[strings.ToLower(strings.TrimSpace(to))]
	if !ok {
		return 0, "", fmt.Errorf("unknown unit: %s", to)
	}
	if src.dimension != dst.dimension {
		return 0, "", fmt.Errorf("cannot convert %s (%s) to %s (%s)", src.name, src.dimension, dst.name, dst.dimension)
	}

	base := value*src.factor + src.offset
	result := (base - dst.offset) / dst.factor
	return result, dst.name, nil
}

// Units returns the canonical unit names grouped by dimension, for the
// converter UI's unit pickers.
func Units() (map[string][]string, error) {
	index, err := loadUnits()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	out := make(map[string][]string)
	for _, u := range index {
		if seen[u.dimension+"/"+u.name] {
			continue
		}
		seen[u.dimension+"/"+u.name] = true
		out[u.dimension] = append(out[u.dimension], u.name)
	}
	return out, nil
}
