// core/stats/groups.go
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// SampleGroups maps experimental group names to the intensity column names
// that hold their replicates.
type SampleGroups struct {
	Groups map[string][]string `yaml:"groups" json:"groups"`
}

// GroupsFromJSON parses the inline flag form:
// {"s1": ["int1","int2"], "s2": ["int3"]}.
func GroupsFromJSON(s string) (*SampleGroups, error) {
	groups := make(map[string][]string)
	if err := json.Unmarshal([]byte(s), &groups); err != nil {
		return nil, fmt.Errorf("parse sample groups: %w", err)
	}
	sg := &SampleGroups{Groups: groups}
	return sg, sg.validate()
}

// GroupsFromFile loads a YAML sample-groups file:
//
//	groups:
//	  s1: [int1, int2]
//	  s2: [int3, int4]
func GroupsFromFile(path string) (*SampleGroups, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sg SampleGroups
	if err := yaml.Unmarshal(raw, &sg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &sg, sg.validate()
}

func (sg *SampleGroups) validate() error {
	if len(sg.Groups) == 0 {
		return fmt.Errorf("no sample groups defined")
	}
	seen := make(map[string]string)
	for g, cols := range sg.Groups {
		if len(cols) == 0 {
			return fmt.Errorf("sample group %q has no intensity columns", g)
		}
		for _, c := range cols {
			if prev, dup := seen[c]; dup {
				return fmt.Errorf("intensity column %q in groups %q and %q", c, prev, g)
			}
			seen[c] = g
		}
	}
	return nil
}

// AllColumns returns every intensity column across groups, sorted for
// deterministic processing order.
func (sg *SampleGroups) AllColumns() []string {
	var cols []string
	for _, cs := range sg.Groups {
		cols = append(cols, cs...)
	}
	sort.Strings(cols)
	return cols
}

// GroupNames returns the group names, sorted.
func (sg *SampleGroups) GroupNames() []string {
	names := make([]string, 0, len(sg.Groups))
	for g := range sg.Groups {
		names = append(names, g)
	}
	sort.Strings(names)
	return names
}
