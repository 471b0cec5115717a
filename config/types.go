package config

import "time"

// Config the lisa configuration
type Config struct {
	Mode          string `json:"mode,omitempty" env:"LISA_ENV" envDefault:"production"`                // production/development
	Root          string `json:"root,omitempty" env:"LISA_ROOT" envDefault:"."`                        // Working directory
	Lang          string `json:"lang,omitempty" env:"LISA_LANG" envDefault:"en-us"`                    // Default language setting
	Log           string `json:"log,omitempty" env:"LISA_LOG"`                                         // Log file, empty: <root>/logs/lisa.log
	LogMode       string `json:"log_mode,omitempty" env:"LISA_LOG_MODE" envDefault:"TEXT"`             // JSON|TEXT
	LogMaxSize    int    `json:"log_max_size,omitempty" env:"LISA_LOG_MAX_SIZE" envDefault:"100"`      // megabytes
	LogMaxAge     int    `json:"log_max_age,omitempty" env:"LISA_LOG_MAX_AGE" envDefault:"7"`          // days
	LogMaxBackups int    `json:"log_max_backups,omitempty" env:"LISA_LOG_MAX_BACKUPS" envDefault:"3"`  // files
	LogLocalTime  bool   `json:"log_local_time,omitempty" env:"LISA_LOG_LOCAL_TIME" envDefault:"true"` // Local time in rotated file names
	Rag           Rag    `json:"rag,omitempty"`                                                        // Repository and collection settings
}

// Rag repository and collection settings
type Rag struct {
	AdminGroups  []string      `json:"admin_groups,omitempty" env:"LISA_ADMIN_GROUPS" envSeparator:"|" envDefault:"admin"` // Groups bypassing collection access rules, the separator is |
	LegacyFile   string        `json:"legacy_file,omitempty" env:"LISA_RAG_LEGACY_FILE"`                                   // Statically provisioned repositories (YAML)
	PollInterval time.Duration `json:"poll_interval,omitempty" env:"LISA_RAG_POLL_INTERVAL" envDefault:"5s"`               // Deployment status polling interval
}
