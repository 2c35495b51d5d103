package utils

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	OTP      OTPConfig
	Notify   NotifyConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	MaxConns    int32
	AutoMigrate bool
}

// OTPConfig carries the code generator policy plus the record lifetime.
// With every character class disabled the generator falls back to digits.
type OTPConfig struct {
	Length             int
	Digits             bool
	UpperCaseAlphabets bool
	LowerCaseAlphabets bool
	SpecialChars       bool
	ExpiryMinutes      int
}

// NotifyConfig selects the OTP delivery driver: "none" skips delivery,
// "log" writes codes to the application log, "nats" publishes delivery
// jobs for an external SMS worker.
type NotifyConfig struct {
	Driver      string
	NATSUrl     string
	NATSSubject string
}

type AuthConfig struct {
	SessionExpiryHours int
	// DefaultEmailDomain is used to derive an email address for identities
	// provisioned from a bare phone number.
	DefaultEmailDomain string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "phone-auth")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("OTP_LENGTH", 6)
	viper.SetDefault("OTP_DIGITS", true)
	viper.SetDefault("OTP_UPPERCASE_ALPHABETS", false)
	viper.SetDefault("OTP_LOWERCASE_ALPHABETS", false)
	viper.SetDefault("OTP_SPECIAL_CHARS", false)
	viper.SetDefault("OTP_EXPIRY_MINUTES", 10)
	viper.SetDefault("NOTIFY_DRIVER", "log")
	viper.SetDefault("NATS_URL", "nats://localhost:4222")
	viper.SetDefault("NATS_SUBJECT", "otp.deliver")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("DEFAULT_EMAIL_DOMAIN", "phone.local")

	// A missing .env is fine, container deployments set the environment
	// directly. Any other read error is fatal.
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			Name:        viper.GetString("DB_NAME"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			MaxConns:    viper.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		OTP: OTPConfig{
			Length:             viper.GetInt("OTP_LENGTH"),
			Digits:             viper.GetBool("OTP_DIGITS"),
			UpperCaseAlphabets: viper.GetBool("OTP_UPPERCASE_ALPHABETS"),
			LowerCaseAlphabets: viper.GetBool("OTP_LOWERCASE_ALPHABETS"),
			SpecialChars:       viper.GetBool("OTP_SPECIAL_CHARS"),
			ExpiryMinutes:      viper.GetInt("OTP_EXPIRY_MINUTES"),
		},
		Notify: NotifyConfig{
			Driver:      viper.GetString("NOTIFY_DRIVER"),
			NATSUrl:     viper.GetString("NATS_URL"),
			NATSSubject: viper.GetString("NATS_SUBJECT"),
		},
		Auth: AuthConfig{
			SessionExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
			DefaultEmailDomain: viper.GetString("DEFAULT_EMAIL_DOMAIN"),
		},
	}

	return config, nil
}
