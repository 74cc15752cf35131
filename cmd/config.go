package cmd

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"shelve.dev/pkg/shelve/internal/adapter"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "shelve"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName      = "output"
	verboseFlagName     = "verbose"
	logFileFlagName     = "log-file"
	toFlagName          = "to"
	depthFlagName       = "depth"
	limitFlagName       = "limit"
	dryRunFlagName      = "dry-run"
	interactiveFlagName = "interactive"
	excludeFlagName     = "exclude"

	sortRootKey   = "sort.root"
	sortDepthKey  = "sort.depth"
	sortLimitKey  = "sort.limit"
	sortDryRunKey = "sort.dry_run"

	classifierProviderKey = "classifier.provider"
	classifierModelKey    = "classifier.model"
	classifierAPIKeyKey   = "classifier.api_key"
	classifierBaseURLKey  = "classifier.base_url"
	classifierTimeoutKey  = "classifier.timeout"

	defaultReportsDir        = ".shelve-reports"
	defaultSortRoot          = "."
	defaultSortDepth         = 4
	defaultSortLimit         = 10
	defaultSortDryRun        = false
	defaultClassifierModel   = "gpt-4.1-mini"
	defaultClassifierTimeout = 60 * time.Second

	envPrefix = "SHELVE"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".shelve.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(sortRootKey, defaultSortRoot)
	viper.SetDefault(sortDepthKey, defaultSortDepth)
	viper.SetDefault(sortLimitKey, defaultSortLimit)
	viper.SetDefault(sortDryRunKey, defaultSortDryRun)

	viper.SetDefault(classifierProviderKey, adapter.ProviderOpenAI)
	viper.SetDefault(classifierModelKey, defaultClassifierModel)
	viper.SetDefault(classifierAPIKeyKey, "")
	viper.SetDefault(classifierBaseURLKey, "")
	viper.SetDefault(classifierTimeoutKey, int64(defaultClassifierTimeout.Seconds()))

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// classifierConfig reads the classifier settings. Without an explicit key
// the provider's conventional environment variable is used.
func classifierConfig() adapter.ClassifierConfig {
	provider := strings.ToLower(strings.TrimSpace(viper.GetString(classifierProviderKey)))

	apiKey := viper.GetString(classifierAPIKeyKey)
	if apiKey == "" {
		apiKey = providerAPIKey(provider)
	}

	return adapter.ClassifierConfig{
		Provider: provider,
		Model:    viper.GetString(classifierModelKey),
		APIKey:   apiKey,
		BaseURL:  viper.GetString(classifierBaseURLKey),
		Timeout:  time.Duration(viper.GetInt64(classifierTimeoutKey)) * time.Second,
	}
}

func providerAPIKey(provider string) string {
	switch provider {
	case adapter.ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case adapter.ProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	}

	return ""
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// Records go to a rotated log file at the configured level. With verbose set
// they are also mirrored to stderr and the level drops to Debug.
func configureLogger(logPath string, verbose bool, stderr io.Writer) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	verbose = verbose || viper.GetBool(logVerboseKey)

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	globalLogger = newLogger(logWriter, stderr, verbose, parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo))
	slog.SetDefault(globalLogger)
}

func newLogger(file, stderr io.Writer, verbose bool, level slog.Level) *slog.Logger {
	if verbose {
		level = slog.LevelDebug
	}

	fileHandler := slog.NewTextHandler(file, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})

	if !verbose || stderr == nil {
		return slog.New(fileHandler)
	}

	stderrHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})

	return slog.New(slogmulti.Fanout(fileHandler, stderrHandler))
}
