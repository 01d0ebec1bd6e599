package sindex

// Registry holds every table loaded from the coefficient file: species,
// curves, site-class conversions and species-to-species conversions. It is
// built once by LoadTables and read-only afterwards, so it may be shared
// across any number of concurrent readers without locking.
type Registry struct {
	version     string
	species     []Species
	curves      []Curve
	siteClasses map[siteClassKey]float64
	conversions map[speciesPair]linearConversion
}

// VersionNumber returns the semantic version of the loaded coefficient table.
func (r *Registry) VersionNumber() string {
	return r.version
}

// SpeciesCount returns the number of loaded species.
func (r *Registry) SpeciesCount() int {
	return len(r.species)
}

// CurveCount returns the number of loaded curves across all species.
func (r *Registry) CurveCount() int {
	return len(r.curves)
}
