package catalog

// Entry is one CPV code in the catalogue.
type Entry struct {
	Code  string `yaml:"code" json:"code"`
	Label string `yaml:"label" json:"label"`
	Group string `yaml:"group,omitempty" json:"group,omitempty"`
}

type catalogFile struct {
	Entries []Entry `yaml:"entries"`
}
