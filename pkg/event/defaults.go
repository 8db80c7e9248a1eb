package event

// Defaults returns the sample dataset used when storage holds nothing yet.
func Defaults() *Dataset {
	events := []Event{
		{ID: 1, Name: "Roman Republic", Start: -509, End: -27, Region: "Western Europe",
			Description: "Ancient Rome governed by the Senate and the popular assemblies."},
		{ID: 2, ParentID: IntPtr(1), Name: "Punic Wars", Start: -264, End: -146, Region: "Western Europe",
			Description: "Three wars fought between Rome and Carthage."},
		{ID: 3, Name: "Campaigns of Alexander the Great", Start: -334, End: -323, Region: "Eastern Europe",
			Description: "Alexander III of Macedon's expedition against the Achaemenid Empire."},
		{ID: 4, Name: "Warring States period", Start: -403, End: -221, Region: "China",
			Description: "An era of division in which many states fought for supremacy."},
	}
	regions := []Region{
		{ID: "r1", Name: "Western Europe", Subregions: []Subregion{}},
		{ID: "r2", Name: "Eastern Europe", Subregions: []Subregion{}},
		{ID: "r3", Name: "West Asia (Orient)", Subregions: []Subregion{}},
		{ID: "r4", Name: "South Asia", Subregions: []Subregion{}},
		{ID: "r5", Name: "Southeast Asia", Subregions: []Subregion{}},
		{ID: "r6", Name: "China", Subregions: []Subregion{}},
		{ID: "r7", Name: "Africa", Subregions: []Subregion{}},
		{ID: "r8", Name: "Americas", Subregions: []Subregion{}},
	}
	return NewDataset(events, regions)
}
