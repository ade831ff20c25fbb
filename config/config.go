package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Daemon    DaemonConfig
	LogSource LogSourceConfig
	Stream    StreamConfig
	Scheduler SchedulerConfig
	APIKey    string
}

type ServerConfig struct {
	Port string
}

// DaemonConfig locates the balancer container and the configuration
// file mounted into it.
type DaemonConfig struct {
	Container  string
	Image      string
	ConfigPath string
}

// LogSourceConfig selects where balancer logs are read from: "docker"
// tails the container, "file" follows a log file at Path.
type LogSourceConfig struct {
	Type string
	Path string
}

type StreamConfig struct {
	BackfillLines int
}

type SchedulerConfig struct {
	ProbeSchedule string
}

func NewConfig() (*Config, error) {
	// Configure Viper to read .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// Enable automatic environment variable loading
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("PROXLB_CONTAINER", "proxlb")
	viper.SetDefault("PROXLB_IMAGE", "cr.gyptazy.com/proxlb/proxlb:latest")
	viper.SetDefault("PROXLB_CONFIG", "/etc/proxlb/proxlb.yaml")
	viper.SetDefault("LOG_SOURCE_TYPE", "docker")
	viper.SetDefault("LOG_SOURCE_PATH", "")
	viper.SetDefault("STREAM_BACKFILL_LINES", 50)
	viper.SetDefault("SCHEDULER_PROBE_SCHEDULE", "*/30 * * * * *") // Every 30 seconds

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config
	config.Server.Port = viper.GetString("SERVER_PORT")

	// --- Balancer daemon ---
	config.Daemon.Container = viper.GetString("PROXLB_CONTAINER")
	config.Daemon.Image = viper.GetString("PROXLB_IMAGE")
	config.Daemon.ConfigPath = viper.GetString("PROXLB_CONFIG")

	// --- Log source ---
	config.LogSource.Type = viper.GetString("LOG_SOURCE_TYPE")
	config.LogSource.Path = viper.GetString("LOG_SOURCE_PATH")

	// --- Live stream ---
	config.Stream.BackfillLines = viper.GetInt("STREAM_BACKFILL_LINES")

	// --- Scheduler ---
	config.Scheduler.ProbeSchedule = viper.GetString("SCHEDULER_PROBE_SCHEDULE")

	config.APIKey = viper.GetString("API_KEY")

	logged := config
	if logged.APIKey != "" {
		logged.APIKey = "********"
	}
	log.Info().Interface("config", logged).Msg("Config loaded")
	return &config, nil
}
