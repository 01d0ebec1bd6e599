// tables.go loads the species and curve coefficient tables from the embedded
// YAML document, or from a caller-supplied override file.
package sindex

import (
	_ "embed" // coefficient table
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/curves.yaml
var embeddedTables []byte

// coefficientList preserves the declaration order of a YAML coefficient
// mapping.
type coefficientList []Coefficient

func (cl *coefficientList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("coefficients must be a mapping, got %s at line %d", value.Tag, value.Line)
	}
	out := make(coefficientList, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var v float64
		if err := value.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("coefficient %s: %w", value.Content[i].Value, err)
		}
		out = append(out, Coefficient{Name: value.Content[i].Value, Value: v})
	}
	*cl = out
	return nil
}

type speciesEntry struct {
	Code            string            `yaml:"code"`
	Name            string            `yaml:"name"`
	DefaultCurve    string            `yaml:"default_curve"`
	DefaultGICurve  string            `yaml:"default_gi_curve"`
	DefaultsByRegen map[string]string `yaml:"defaults_by_regen"`
}

type curveEntry struct {
	Key          string          `yaml:"key"`
	Species      string          `yaml:"species"`
	Name         string          `yaml:"name"`
	Source       string          `yaml:"source"`
	Notes        string          `yaml:"notes"`
	Model        string          `yaml:"model"`
	AgeDomain    string          `yaml:"age_domain"`
	MaxAge       float64         `yaml:"max_age"`
	GIRange      float64         `yaml:"gi_range"`
	Coefficients coefficientList `yaml:"coefficients"`
}

type siteClassEntry struct {
	Species string             `yaml:"species"`
	Fiz     string             `yaml:"fiz"`
	Classes map[string]float64 `yaml:"classes"`
}

type conversionEntry struct {
	Source    string  `yaml:"source"`
	Target    string  `yaml:"target"`
	Intercept float64 `yaml:"intercept"`
	Slope     float64 `yaml:"slope"`
}

type tableFile struct {
	Version     string            `yaml:"version"`
	Species     []speciesEntry    `yaml:"species"`
	Curves      []curveEntry      `yaml:"curves"`
	SiteClasses []siteClassEntry  `yaml:"site_classes"`
	Conversions []conversionEntry `yaml:"conversions"`
}

// LoadTables parses the coefficient table into a Registry. An empty
// customPath loads the embedded table that ships with the module; otherwise
// the file at customPath is used. Table order defines the stable species and
// curve indices.
func LoadTables(customPath string) (*Registry, error) {
	data := embeddedTables
	if customPath != "" {
		var err error
		data, err = os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read curve table %s: %w", customPath, err)
		}
	}

	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal curve table: %w", err)
	}
	if file.Version == "" {
		return nil, fmt.Errorf("curve table has no version")
	}

	r := &Registry{
		version:     file.Version,
		siteClasses: make(map[siteClassKey]float64),
		conversions: make(map[speciesPair]linearConversion),
	}

	speciesByCode := make(map[string]int, len(file.Species))
	for i, entry := range file.Species {
		code := strings.TrimSpace(entry.Code)
		if code == "" {
			return nil, fmt.Errorf("species %d has an empty code", i)
		}
		if _, dup := speciesByCode[code]; dup {
			return nil, fmt.Errorf("duplicate species code %s", code)
		}
		speciesByCode[code] = i
		r.species = append(r.species, Species{
			Index:          i,
			Code:           code,
			Name:           entry.Name,
			DefaultCurve:   -1,
			DefaultGICurve: -1,
		})
	}

	curveByKey := make(map[string]int, len(file.Curves))
	for i, entry := range file.Curves {
		if entry.Key == "" {
			return nil, fmt.Errorf("curve %d has an empty key", i)
		}
		if _, dup := curveByKey[entry.Key]; dup {
			return nil, fmt.Errorf("duplicate curve key %s", entry.Key)
		}
		spIdx, ok := speciesByCode[entry.Species]
		if !ok {
			return nil, fmt.Errorf("curve %s references unknown species %s", entry.Key, entry.Species)
		}
		ageDomain, err := ParseAgeType(entry.AgeDomain)
		if err != nil {
			return nil, fmt.Errorf("curve %s: %w", entry.Key, err)
		}
		curveByKey[entry.Key] = i
		r.curves = append(r.curves, Curve{
			Index:        i,
			SpeciesIndex: spIdx,
			Key:          entry.Key,
			Name:         entry.Name,
			Source:       entry.Source,
			Notes:        entry.Notes,
			ModelTag:     entry.Model,
			Coefficients: []Coefficient(entry.Coefficients),
			AgeDomain:    ageDomain,
			MaxAge:       entry.MaxAge,
			GIRange:      entry.GIRange,
		})
		r.species[spIdx].curves = append(r.species[spIdx].curves, i)

		// Constructing the model validates tag and coefficient completeness
		// at load time instead of first dispatch.
		if _, err := newModel(&r.curves[i]); err != nil {
			return nil, fmt.Errorf("curve %s: %w", entry.Key, err)
		}
	}

	resolveCurve := func(owner string, key string) (int, error) {
		if key == "" {
			return -1, nil
		}
		idx, ok := curveByKey[key]
		if !ok {
			return 0, fmt.Errorf("species %s references unknown curve %s", owner, key)
		}
		return idx, nil
	}

	for i, entry := range file.Species {
		sp := &r.species[i]
		var err error
		if sp.DefaultCurve, err = resolveCurve(sp.Code, entry.DefaultCurve); err != nil {
			return nil, err
		}
		if sp.DefaultGICurve, err = resolveCurve(sp.Code, entry.DefaultGICurve); err != nil {
			return nil, err
		}
		if len(entry.DefaultsByRegen) > 0 {
			sp.defaultByRegen = make(map[RegenerationType]int, len(entry.DefaultsByRegen))
			for regenName, curveKey := range entry.DefaultsByRegen {
				regen, err := ParseRegenerationType(regenName)
				if err != nil {
					return nil, fmt.Errorf("species %s: %w", sp.Code, err)
				}
				idx, err := resolveCurve(sp.Code, curveKey)
				if err != nil {
					return nil, err
				}
				sp.defaultByRegen[regen] = idx
			}
		}
	}

	for _, entry := range file.SiteClasses {
		spIdx, ok := speciesByCode[entry.Species]
		if !ok {
			return nil, fmt.Errorf("site class table references unknown species %s", entry.Species)
		}
		fiz, err := ParseFizZone(entry.Fiz)
		if err != nil {
			return nil, fmt.Errorf("site class table for %s: %w", entry.Species, err)
		}
		for className, siteIndex := range entry.Classes {
			class, err := ParseSiteClass(className)
			if err != nil {
				return nil, fmt.Errorf("site class table for %s: %w", entry.Species, err)
			}
			r.siteClasses[siteClassKey{species: spIdx, class: class, fiz: fiz}] = siteIndex
		}
	}

	for _, entry := range file.Conversions {
		srcIdx, ok := speciesByCode[entry.Source]
		if !ok {
			return nil, fmt.Errorf("conversion table references unknown species %s", entry.Source)
		}
		dstIdx, ok := speciesByCode[entry.Target]
		if !ok {
			return nil, fmt.Errorf("conversion table references unknown species %s", entry.Target)
		}
		r.conversions[speciesPair{source: srcIdx, target: dstIdx}] = linearConversion{
			intercept: entry.Intercept,
			slope:     entry.Slope,
		}
	}

	return r, nil
}
