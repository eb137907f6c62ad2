package config

// RuntimeOverrides holds configuration values that can be overridden at
// runtime via CLI flags
type RuntimeOverrides struct {
	LogLevel *string
	LogFile  *string
	BaseURL  *string
	UseTools *bool
}

func applyOverrides(cfg *ConfigSchema, overrides *RuntimeOverrides) {
	if overrides == nil {
		return
	}
	if overrides.LogLevel != nil {
		cfg.Log.LogLevel = *overrides.LogLevel
	}
	if overrides.LogFile != nil {
		cfg.Log.LogFile = *overrides.LogFile
	}
	if overrides.BaseURL != nil {
		cfg.API.BaseURL = *overrides.BaseURL
	}
	if overrides.UseTools != nil {
		cfg.API.UseTools = *overrides.UseTools
	}
}
