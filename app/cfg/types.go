package cfg

type Cfg struct {
	// Search provider configuration
	TEDAPIURL      string
	HomeCountry    string
	LookbackDays   int
	PageSize       int
	RequestTimeout int // seconds

	// Application configuration
	Port         string
	CatalogDir   string
	APIAccessKey string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
