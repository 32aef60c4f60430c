// Package config is responsible for setting the program config from
// the config file and command-line arguments
package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

const Version = "v0.3.0"

var appCfg = &AppConfig{}

var once sync.Once

var errInitFailed = errors.New(
	"unable to initialise NeuroVerse settings from the configuration file",
)

var (
	configDir      = "neuroverse"
	configFileName = "config.yml"
	dbFileName     = "neuroverse.db"
	logFileName    = "neuroverse.log"
)

const (
	defaultServerURL        = "http://localhost:8000"
	defaultMaxRecordingSecs = 120
	defaultTickIntervalMs   = 100
	defaultHandoffDelayMs   = 500
)

const (
	configServerURL        = "server_url"
	configNotify           = "notify"
	configDarkTheme        = "dark_theme"
	configStory            = "story"
	configMaxRecordingSecs = "max_recording_secs"
	configTickIntervalMs   = "tick_interval_ms"
	configHandoffDelayMs   = "handoff_delay_ms"
	configAfterTestCmd     = "after_test_cmd"
)

// AppConfig represents the program configuration derived from the config
// file and command-line arguments.
type AppConfig struct {
	Stderr       io.Writer     `json:"-"`
	Stdout       io.Writer     `json:"-"`
	Stdin        io.Reader     `json:"-"`
	ServerURL    string        `json:"server_url"`
	PathToConfig string        `json:"path_to_config"`
	PathToDB     string        `json:"path_to_db"`
	PathToLog    string        `json:"path_to_log"`
	StoryID      string        `json:"story"`
	AfterTestCmd string        `json:"after_test_cmd"`
	MaxRecording time.Duration `json:"max_recording"`
	TickInterval time.Duration `json:"tick_interval"`
	HandoffDelay time.Duration `json:"handoff_delay"`
	Notify       bool          `json:"notify"`
	DarkTheme    bool          `json:"dark_theme"`
}

func init() {
	if os.Getenv("NEUROVERSE_ENV") == "development" {
		configFileName = "config_dev.yml"
		dbFileName = "neuroverse_dev.db"
		logFileName = "neuroverse_dev.log"
	}
}

// Dir returns the relative directory name holding all NeuroVerse files.
func Dir() string {
	return configDir
}

// DBFilePath returns the path to the local database file.
func DBFilePath() string {
	return appCfg.PathToDB
}

// LogFilePath returns the path to the rotating log file.
func LogFilePath() string {
	return appCfg.PathToLog
}

func setDefaults() {
	viper.SetDefault(configServerURL, defaultServerURL)
	viper.SetDefault(configNotify, true)
	viper.SetDefault(configDarkTheme, true)
	viper.SetDefault(configStory, "")
	viper.SetDefault(configMaxRecordingSecs, defaultMaxRecordingSecs)
	viper.SetDefault(configTickIntervalMs, defaultTickIntervalMs)
	viper.SetDefault(configHandoffDelayMs, defaultHandoffDelayMs)
	viper.SetDefault(configAfterTestCmd, "")
}

// createAppConfig writes the default settings to the user's config
// directory on first run.
func createAppConfig() error {
	setDefaults()

	err := viper.WriteConfigAs(appCfg.PathToConfig)
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Default settings have been saved to: %s",
		appCfg.PathToConfig,
	)

	return nil
}

// initAppConfig reads the configuration file, creating it with defaults if
// it does not exist yet.
func initAppConfig() error {
	viper.SetConfigName(configFileName)
	viper.SetConfigType("yaml")

	pathToConfigFile, err := xdg.ConfigFile(
		filepath.Join(configDir, configFileName),
	)
	if err != nil {
		return err
	}

	appCfg.PathToConfig = pathToConfigFile

	viper.AddConfigPath(filepath.Dir(appCfg.PathToConfig))

	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return createAppConfig()
		}

		return err
	}

	setDefaults()

	return nil
}

func setAppConfig(ctx *cli.Context) error {
	appCfg.Stderr = os.Stderr
	appCfg.Stdout = os.Stdout
	appCfg.Stdin = os.Stdin

	pathToDB, err := xdg.DataFile(filepath.Join(configDir, dbFileName))
	if err != nil {
		return err
	}

	appCfg.PathToDB = pathToDB

	pathToLog, err := xdg.DataFile(filepath.Join(configDir, logFileName))
	if err != nil {
		return err
	}

	appCfg.PathToLog = pathToLog

	// set from config file
	appCfg.ServerURL = viper.GetString(configServerURL)
	appCfg.Notify = viper.GetBool(configNotify)
	appCfg.DarkTheme = viper.GetBool(configDarkTheme)
	appCfg.StoryID = viper.GetString(configStory)
	appCfg.AfterTestCmd = viper.GetString(configAfterTestCmd)
	appCfg.MaxRecording = time.Duration(
		viper.GetInt(configMaxRecordingSecs),
	) * time.Second
	appCfg.TickInterval = time.Duration(
		viper.GetInt(configTickIntervalMs),
	) * time.Millisecond
	appCfg.HandoffDelay = time.Duration(
		viper.GetInt(configHandoffDelayMs),
	) * time.Millisecond

	// set from command-line arguments
	if ctx.String("server") != "" {
		appCfg.ServerURL = ctx.String("server")
	}

	if ctx.String("story") != "" {
		appCfg.StoryID = ctx.String("story")
	}

	if ctx.Bool("disable-notification") {
		appCfg.Notify = false
	}

	if ctx.Uint("max-recording") > 0 {
		appCfg.MaxRecording = time.Duration(
			ctx.Uint("max-recording"),
		) * time.Second
	}

	if ctx.String("after-test-cmd") != "" {
		appCfg.AfterTestCmd = ctx.String("after-test-cmd")
	}

	return nil
}

// App initializes and returns the application configuration. This
// initialization is done just once no matter how many times it is called.
func App(ctx *cli.Context) *AppConfig {
	once.Do(func() {
		err := initAppConfig()
		if err == nil {
			err = setAppConfig(ctx)
		}

		if err != nil {
			pterm.Error.Printfln("%s: %s", errInitFailed.Error(), err.Error())
			os.Exit(1)
		}
	})

	return appCfg
}
