package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/salary-oracle/internal/common"
	"github.com/Veraticus/salary-oracle/internal/model"
	"github.com/Veraticus/salary-oracle/internal/predict"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyPredictorMode  = "predictor.mode"
	KeyModelDir       = "model.dir"
	KeyAPIKey         = "watsonx.api_key"
	KeyIAMURL         = "watsonx.iam_url"
	KeyScoringURL     = "watsonx.scoring_url"
	KeyDatabasePath   = "database.path"
	KeyHistoryEnabled = "history.enabled"
	KeyTheme          = "tui.theme"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
	KeyEnvFile        = "env_file"
)

// Settings is the resolved application configuration.
type Settings struct {
	Mode           model.Mode
	ModelDir       string
	APIKey         string
	IAMURL         string
	ScoringURL     string
	DatabasePath   string
	Theme          string
	HistoryEnabled bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPredictorMode, string(model.ModeLocal))
	v.SetDefault(KeyModelDir, "./model")
	v.SetDefault(KeyIAMURL, predict.DefaultIAMURL)
	v.SetDefault(KeyScoringURL, predict.DefaultScoringURL)
	v.SetDefault(KeyDatabasePath, "~/.local/share/salary/history.db")
	v.SetDefault(KeyHistoryEnabled, true)
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeyEnvFile, ".env")

	// The API key is also accepted under the name the deployment docs use.
	_ = v.BindEnv(KeyAPIKey, "SALARY_WATSONX_API_KEY", predict.APIKeyEnv)
}

// LoadEnvFile loads variables from a dotenv file. A missing file is not an
// error; variables already set in the environment win.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	path = ExpandPath(path)
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("No env file found", "path", path)
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	slog.Debug("Loaded env file", "path", path)
	return nil
}

// Load resolves Settings from v.
func Load(v *viper.Viper) (Settings, error) {
	mode, ok := model.ParseMode(v.GetString(KeyPredictorMode))
	if !ok {
		return Settings{}, fmt.Errorf("%w: %s must be %q or %q, got %q",
			common.ErrInvalidConfig, KeyPredictorMode, model.ModeLocal, model.ModeRemote, v.GetString(KeyPredictorMode))
	}

	s := Settings{
		Mode:           mode,
		ModelDir:       ExpandPath(v.GetString(KeyModelDir)),
		APIKey:         v.GetString(KeyAPIKey),
		IAMURL:         v.GetString(KeyIAMURL),
		ScoringURL:     v.GetString(KeyScoringURL),
		DatabasePath:   ExpandPath(v.GetString(KeyDatabasePath)),
		Theme:          v.GetString(KeyTheme),
		HistoryEnabled: v.GetBool(KeyHistoryEnabled),
	}

	if s.ModelDir == "" {
		return Settings{}, fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyModelDir)
	}
	if s.HistoryEnabled && s.DatabasePath == "" {
		return Settings{}, fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyDatabasePath)
	}

	return s, nil
}

// DefaultConfigDir returns the directory searched for config.yaml.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "salary"), nil
}
