package event

// Region is a main region column and its ordered subregions.
type Region struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Subregions []Subregion `json:"subregions" yaml:"subregions"`
}

// Subregion is owned by exactly one Region.
type Subregion struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Names flattens regions into column names: each main region followed by its
// subregions. Main and sub regions are siblings in layout.
func Names(regions []Region) []string {
	names := make([]string, 0, len(regions))
	for _, r := range regions {
		names = append(names, r.Name)
		for _, s := range r.Subregions {
			names = append(names, s.Name)
		}
	}
	return names
}

// MainRegion returns the main region that name is, or is a subregion of.
func MainRegion(regions []Region, name string) (Region, bool) {
	for _, r := range regions {
		if r.Name == name {
			return r, true
		}
		for _, s := range r.Subregions {
			if s.Name == name {
				return r, true
			}
		}
	}
	return Region{}, false
}

// KnownName reports whether name is any region or subregion name.
func KnownName(regions []Region, name string) bool {
	_, ok := MainRegion(regions, name)
	return ok
}

func cloneRegions(regions []Region) []Region {
	out := make([]Region, len(regions))
	for i, r := range regions {
		out[i] = r
		out[i].Subregions = append([]Subregion(nil), r.Subregions...)
	}
	return out
}
