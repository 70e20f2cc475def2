package models

// MConfig Structure
type MConfig struct {
	Name      string          `yaml:"name"`
	Host      string          `yaml:"host"`
	Port      int             `yaml:"port"`
	LogLevel  string          `yaml:"log_level"`
	LogFormat string          `yaml:"log_format"`
	LogOutput string          `yaml:"log_output"`
	LogMaxAge int             `yaml:"log_max_age_days"`
	Exchange  MExchangeConfig `yaml:"exchange"`
	Storage   MStorageConfig  `yaml:"storage"`
	Network   MNetworkConfig  `yaml:"network"`
}

type MExchangeConfig struct {
	APIURL         string   `yaml:"api_url"`
	Currencies     []string `yaml:"currencies"`
	MaxHistoryDays int      `yaml:"max_history_days"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MNetworkConfig struct {
	RequestTimeout int    `yaml:"timeout"`
	UserAgent      string `yaml:"user_agent"`
}
