package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/yaoapp/kun/exception"
	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/lisa/rag/api"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Conf the loaded configuration
var Conf Config

// LogOutput the log file
var LogOutput io.WriteCloser

// Init loads the configuration from the environment, overloaded by <root>/.env when present
func Init(root string) {
	filename, _ := filepath.Abs(filepath.Join(root, ".env"))
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		Conf = Load()
	} else {
		Conf = LoadFrom(filename)
	}

	if Conf.Mode == "development" {
		Development()
		return
	}
	Production()
}

// LoadFrom loads the configuration after overloading the environment with envfile
func LoadFrom(envfile string) Config {
	file, err := filepath.Abs(envfile)
	if err != nil {
		return Load()
	}

	if err := godotenv.Overload(file); err != nil {
		log.Warn("[Config] %s: %s", file, err.Error())
	}
	return Load()
}

// Load the config
func Load() Config {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		exception.New("Can't read config %s", 500, err.Error()).Throw()
	}

	cfg.Root, _ = filepath.Abs(cfg.Root)
	if cfg.Rag.LegacyFile != "" && !filepath.IsAbs(cfg.Rag.LegacyFile) {
		cfg.Rag.LegacyFile = filepath.Join(cfg.Root, cfg.Rag.LegacyFile)
	}
	return cfg
}

// Options the service options derived from the configuration
func (cfg Config) Options() api.Options {
	return api.Options{
		AdminGroups:  append([]string{}, cfg.Rag.AdminGroups...),
		PollInterval: cfg.Rag.PollInterval,
	}
}

// Production sets the production mode
func Production() {
	os.Setenv("LISA_ENV", "production")
	Conf.Mode = "production"
	log.SetLevel(log.InfoLevel)
	log.SetFormatter(log.TEXT)
	if Conf.LogMode == "JSON" {
		log.SetFormatter(log.JSON)
	}
	ReloadLog()
}

// Development sets the development mode
func Development() {
	os.Setenv("LISA_ENV", "development")
	Conf.Mode = "development"
	log.SetLevel(log.TraceLevel)
	log.SetFormatter(log.TEXT)
	if Conf.LogMode == "JSON" {
		log.SetFormatter(log.JSON)
	}
	ReloadLog()
}

// ReloadLog reopens the log file
func ReloadLog() {
	CloseLog()
	OpenLog()
}

// OpenLog opens the log file. Logs are discarded when the log directory does not exist.
func OpenLog() {
	if Conf.Log == "" {
		Conf.Log = filepath.Join(Conf.Root, "logs", "lisa.log")
	}

	if !filepath.IsAbs(Conf.Log) {
		Conf.Log = filepath.Join(Conf.Root, Conf.Log)
	}

	logfile, err := filepath.Abs(Conf.Log)
	if err != nil {
		return
	}

	if _, err := os.Stat(filepath.Dir(logfile)); errors.Is(err, os.ErrNotExist) {
		log.SetOutput(io.Discard)
		return
	}

	LogOutput = &lumberjack.Logger{
		Filename:   logfile,
		MaxSize:    Conf.LogMaxSize, // megabytes
		MaxBackups: Conf.LogMaxBackups,
		MaxAge:     Conf.LogMaxAge, // days
		LocalTime:  Conf.LogLocalTime,
	}
	log.SetOutput(LogOutput)
}

// CloseLog closes the log file
func CloseLog() {
	if LogOutput == nil {
		return
	}
	if err := LogOutput.Close(); err != nil {
		log.Error(err.Error())
	}
	LogOutput = nil
}
