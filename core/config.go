package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env          string
		Debug        bool
		AppName      string
		Build        string
		RollbarToken string
		API          APIConfig
		List         ListConfig
		Session      SessionConfig
		Sandbox      SandboxConfig
	}

	APIConfig struct {
		BaseURL    string `validate:"required,url"`
		Prefix     string
		AuthScheme string `validate:"required"`
		Timeout    time.Duration
	}

	ListConfig struct {
		Debounce time.Duration
		PageSize int `validate:"oneof=10 20 50 100"`
	}

	SessionConfig struct {
		File string `validate:"required"`
	}

	SandboxConfig struct {
		Address   string `validate:"required"`
		SecretKey string `validate:"required"`
		OTP       string `validate:"omitempty,len=6,digits"`
		TokenTTL  time.Duration
	}
)

// NewConfig loads the configuration of the current environment.
// ENV selects the environment: DEV (local; default), TEST, QA, PROD.
// Every key can be overridden by an environment variable prefixed with it, eg: DEV_API_BASEURL.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "College ERP")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbar.token", "")
	conf.SetDefault("api.baseURL", "http://localhost:9000/")
	conf.SetDefault("api.prefix", "api/v1/")
	conf.SetDefault("api.authScheme", "Token")
	conf.SetDefault("api.timeout", 30*time.Second)
	conf.SetDefault("list.debounce", 500*time.Millisecond)
	conf.SetDefault("list.pageSize", 10)
	conf.SetDefault("session.file", defaultSessionFile())
	conf.SetDefault("sandbox.address", ":9000")
	conf.SetDefault("sandbox.secretKey", "x3k!9v0q#n2m$w7r&t1z*p5c8b+a4y6u")
	conf.SetDefault("sandbox.otp", "")
	conf.SetDefault("sandbox.tokenTTL", 7*24*time.Hour)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbar.token"),
		API: APIConfig{
			BaseURL:    conf.GetString("api.baseURL"),
			Prefix:     conf.GetString("api.prefix"),
			AuthScheme: conf.GetString("api.authScheme"),
			Timeout:    conf.GetDuration("api.timeout"),
		},
		List: ListConfig{
			Debounce: conf.GetDuration("list.debounce"),
			PageSize: conf.GetInt("list.pageSize"),
		},
		Session: SessionConfig{
			File: conf.GetString("session.file"),
		},
		Sandbox: SandboxConfig{
			Address:   conf.GetString("sandbox.address"),
			SecretKey: conf.GetString("sandbox.secretKey"),
			OTP:       conf.GetString("sandbox.otp"),
			TokenTTL:  conf.GetDuration("sandbox.tokenTTL"),
		},
	}
}

// Validate checks the loaded values using validate (see InitValidators).
func (c *Config) Validate(validate *validator.Validate) error {
	return validate.Struct(c)
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".college-erp-session.yaml"
	}
	return filepath.Join(dir, "college-erp", "session.yaml")
}
