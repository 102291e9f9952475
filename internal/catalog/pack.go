package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pack is a YAML file of additional rules loaded at startup.
type Pack struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	PackVersion string     `yaml:"version"`
	Author      string     `yaml:"author"`
	Rules       []PackRule `yaml:"rules"`
}

// PackRule is the YAML form of a Rule. Category and severity are kept as
// strings so that errors can name the offending value.
type PackRule struct {
	Category    string `yaml:"category"`
	Pattern     string `yaml:"pattern"`
	Severity    string `yaml:"severity"`
	Description string `yaml:"description"`
}

// PackInfo is a summary of a pack for listing.
type PackInfo struct {
	Name        string
	Description string
	Version     string
	Author      string
	Enabled     bool
	Path        string
	RuleCount   int
}

// LoadPacks reads rule packs from the given paths. A path may name a single
// YAML file or a directory; in a directory every .yaml/.yml file is loaded in
// name order and files prefixed with "_" are skipped as disabled (and may
// fail to parse without aborting the load). Missing
// directories are ignored. Any unreadable or invalid pack is an error: the
// catalog must be fully valid before the process starts serving.
func LoadPacks(paths ...string) ([]Rule, []PackInfo, error) {
	var (
		rules []Rule
		infos []PackInfo
	)

	for _, p := range paths {
		files, err := packFiles(p)
		if err != nil {
			return nil, nil, err
		}

		for _, f := range files {
			baseName := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
			enabled := !strings.HasPrefix(baseName, "_")

			pack, err := loadPack(f)
			if err != nil {
				if enabled {
					return nil, nil, err
				}
				// A broken disabled pack is listed but never loaded.
				pack = &Pack{}
			}

			info := PackInfo{
				Name:        pack.Name,
				Description: pack.Description,
				Version:     pack.PackVersion,
				Author:      pack.Author,
				Enabled:     enabled,
				Path:        f,
				RuleCount:   len(pack.Rules),
			}
			if info.Name == "" {
				info.Name = strings.TrimPrefix(baseName, "_")
			}
			infos = append(infos, info)

			if !enabled {
				continue
			}

			converted, err := pack.toRules()
			if err != nil {
				return nil, nil, fmt.Errorf("pack %s: %w", f, err)
			}
			rules = append(rules, converted...)
		}
	}

	return rules, infos, nil
}

func packFiles(path string) ([]string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !fi.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func loadPack(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("failed to parse pack %s: %w", path, err)
	}

	return &pack, nil
}

func (p *Pack) toRules() ([]Rule, error) {
	out := make([]Rule, 0, len(p.Rules))
	for i, pr := range p.Rules {
		cat, err := ParseCategory(pr.Category)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		sev, err := ParseSeverity(pr.Severity)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		desc := pr.Description
		if desc == "" {
			desc = pr.Pattern
		}
		out = append(out, Rule{
			Category:    cat,
			Pattern:     pr.Pattern,
			Severity:    sev,
			Description: desc,
		})
	}
	return out, nil
}

func isYAMLFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
