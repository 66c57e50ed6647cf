package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CandidateList is an ordered sequence of source identifiers for one asset
// label. In YAML it may be a single string or a list; order is significant.
type CandidateList []string

func (c *CandidateList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*c = CandidateList{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*c = CandidateList(list)
		return nil
	default:
		return fmt.Errorf("candidate list must be a string or a list of strings")
	}
}

// YieldsCategory holds yield series codes instead of price tickers; its
// labels never go through the price resolver.
const YieldsCategory = "YIELDS"

// Universe maps category name to asset label to candidate identifiers.
type Universe map[string]map[string]CandidateList

// LoadUniverse reads the asset universe definition from a YAML file, dropping
// empty candidates and labels without any.
func LoadUniverse(path string) (Universe, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universe: %w", err)
	}

	var raw Universe
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse universe: %w", err)
	}

	cleaned := make(Universe, len(raw))
	for category, assets := range raw {
		if len(assets) == 0 {
			continue
		}
		kept := make(map[string]CandidateList, len(assets))
		for label, candidates := range assets {
			var list CandidateList
			for _, c := range candidates {
				if c = strings.TrimSpace(c); c != "" {
					list = append(list, c)
				}
			}
			if len(list) > 0 {
				kept[label] = list
			}
		}
		if len(kept) > 0 {
			cleaned[category] = kept
		}
	}
	return cleaned, nil
}

// Labels returns all labels of one category, or nil if absent.
func (u Universe) Labels(category string) map[string]CandidateList { return u[category] }

// Flatten merges the selected categories into one label-to-candidates map.
// A nil selection means every category.
func (u Universe) Flatten(categories []string) map[string]CandidateList {
	flat := make(map[string]CandidateList)
	if categories == nil {
		for cat := range u {
			categories = append(categories, cat)
		}
	}
	for _, cat := range categories {
		for label, candidates := range u[cat] {
			flat[label] = candidates
		}
	}
	return flat
}

// ParseCustomTickers turns a comma-separated ticker string into labeled
// single-candidate entries.
func ParseCustomTickers(csv string) map[string]CandidateList {
	out := make(map[string]CandidateList)
	for _, tk := range strings.Split(csv, ",") {
		if tk = strings.TrimSpace(tk); tk != "" {
			out["Custom "+tk] = CandidateList{tk}
		}
	}
	return out
}
