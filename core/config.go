package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Debug    bool
	TestMode bool
	Env      string
	AppName  string

	Database struct {
		// Path is the SQLite database file. The parent directory is
		// created on open if it does not exist.
		Path string
	}

	Server struct {
		Addr            string
		ShutdownTimeout time.Duration
	}

	RollbarToken string
}

// NewConfig loads configuration from defaults, an optional config/.env.<env>
// file and environment variables (prefixed with the current env name).
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "PSIA Gradebook")
	v.SetDefault("databasePath", filepath.Join(userDataDir(), "gradebook.db"))
	v.SetDefault("serverAddr", "127.0.0.1:8010")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		Env:          env,
		AppName:      v.GetString("appName"),
		RollbarToken: v.GetString("rollbarToken"),
	}
	conf.Database.Path = v.GetString("databasePath")
	conf.Server.Addr = v.GetString("serverAddr")
	conf.Server.ShutdownTimeout = v.GetDuration("serverShutdownTimeout")
	return conf
}

// userDataDir returns the per-user directory holding the gradebook database,
// mirroring where the desktop app kept it.
func userDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "psia-gradebook")
}
