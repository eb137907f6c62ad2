package config

// API configures the connection to the Alpha Discovery backend.
type API struct {
	BaseURL  string `mapstructure:"baseUrl" json:"baseUrl" validate:"required,url" jsonschema:"description=Base URL of the Alpha Discovery API"`
	Key      string `mapstructure:"key" json:"key,omitempty" jsonschema:"description=Bearer token sent with chat requests"`
	UseTools bool   `mapstructure:"useTools" json:"useTools" jsonschema:"description=Whether the backend may call analysis tools,default=true"`
}

// Log configures application logging.
type Log struct {
	LogLevel string `mapstructure:"logLevel" json:"logLevel" validate:"omitempty,oneof=DEBUG INFO WARN ERROR" jsonschema:"enum=DEBUG,enum=INFO,enum=WARN,enum=ERROR"`
	LogFile  string `mapstructure:"logFile" json:"logFile,omitempty" jsonschema:"description=Log file path; stderr when empty"`
}

type ConfigSchema struct {
	API    API    `mapstructure:"api" json:"api"`
	Log    Log    `mapstructure:"log" json:"log"`
	DBPath string `mapstructure:"dbPath" json:"dbPath" validate:"required" jsonschema:"description=Path to the conversation history database"`
}
