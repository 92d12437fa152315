package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default search settings applied to new plans
	DefaultMaxAttempts int   `json:"default_max_attempts"`
	DefaultSeed        int64 `json:"default_seed"`
	DefaultWorkers     int   `json:"default_workers"`
	DefaultExpansion   bool  `json:"default_expansion"`

	// Application preferences
	ListenAddr  string   `json:"listen_addr"` // address for the HTTP API server
	RecentPlans []string `json:"recent_plans"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSearchSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSearchSettings()
	return AppConfig{
		DefaultMaxAttempts: defaults.MaxAttempts,
		DefaultSeed:        defaults.Seed,
		DefaultWorkers:     defaults.Workers,
		DefaultExpansion:   defaults.EnableExpansion,
		ListenAddr:         ":8420",
		RecentPlans:        []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a
// SearchSettings struct. This is used when creating a new plan so it
// inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *SearchSettings) {
	s.MaxAttempts = c.DefaultMaxAttempts
	s.Seed = c.DefaultSeed
	s.Workers = c.DefaultWorkers
	s.EnableExpansion = c.DefaultExpansion
}
