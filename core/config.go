package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug            bool
		TestMode         bool
		Env              string
		Build            string
		AppName          string
		SecretKey        string
		DefaultFromEmail string
		FrontendBaseURL  string
		SendgridAPIKey   string
		RollbarToken     string

		// AllowedEmails is the sign-in allow-list. Empty means any account
		// present in the tenant's user collection may sign in.
		AllowedEmails []string

		// TeamEmails receive critical bug notifications.
		TeamEmails []string

		Server   ServerConfig
		Database DatabaseConfig
		Calcom   CalcomConfig
	}

	ServerConfig struct {
		Host                      string
		Port                      string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	// DatabaseConfig holds one document backend per region. DefaultRegion
	// is used whenever a region token is absent or unrecognized.
	DatabaseConfig struct {
		DefaultRegion string
		Regions       map[string]RegionConfig
	}

	RegionConfig struct {
		URI  string
		Name string
	}

	CalcomConfig struct {
		APIKey             string
		Username           string
		BaseURL            string
		DefaultTimezone    string
		IncludedEventTypes []string
		ExcludedEventTypes []string
		MockFallback       bool
	}
)

func (c ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c Config) DefaultFromEmailAddr() mail.Address {
	return mail.Address{Name: c.AppName, Address: c.DefaultFromEmail}
}

// NewConfig loads the app configuration from the environment, with an
// optional .env file per environment (DEV by default) under rootDir/config.
func NewConfig(rootDir string) *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "HiveDash")
	conf.SetDefault("secretKey", "=09hczma6pa)cca6%bk1*1v)&0&2^-s9eh3p+mgk7f8m0u$51y")
	conf.SetDefault("defaultFromEmail", "noreply@hivespelling.com")
	conf.SetDefault("frontendBaseURL", "http://localhost:5173")
	conf.SetDefault("allowedEmails", []string{})
	conf.SetDefault("teamEmails", []string{"arastogi@hivespelling.com", "erastogi@hivespelling.com"})
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverPort", "8000")
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	conf.SetDefault("defaultRegion", "us")
	conf.SetDefault("usDatabaseURI", "mongodb://localhost:27017")
	conf.SetDefault("usDatabaseName", "hive_us")
	conf.SetDefault("dubaiDatabaseURI", "mongodb://localhost:27017")
	conf.SetDefault("dubaiDatabaseName", "hive_dubai")
	conf.SetDefault("calcomBaseURL", "https://api.cal.com/v1")
	conf.SetDefault("calcomDefaultTimezone", "UTC")
	conf.SetDefault("calcomIncludedEventTypes", []string{
		"Hive Investor Meeting",
		"Prepcenter Platform Demo",
		"Hive Education & Competition Consultation",
		"Hive Platform Demo",
		"Networking",
		"Hive Team Strategy Session",
		"Prepcenter Coordination Meeting",
	})
	conf.SetDefault("calcomExcludedEventTypes", []string{})
	conf.SetDefault("calcomMockFallback", true)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(rootDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.SetEnvPrefix("HIVE")
	conf.AutomaticEnv()

	return &Config{
		Debug:            conf.GetBool("debug"),
		TestMode:         env == "TEST",
		Env:              env,
		Build:            conf.GetString("build"),
		AppName:          conf.GetString("appName"),
		SecretKey:        conf.GetString("secretKey"),
		DefaultFromEmail: conf.GetString("defaultFromEmail"),
		FrontendBaseURL:  conf.GetString("frontendBaseURL"),
		SendgridAPIKey:   conf.GetString("sendgridApiKey"),
		RollbarToken:     conf.GetString("rollbarToken"),
		AllowedEmails:    conf.GetStringSlice("allowedEmails"),
		TeamEmails:       conf.GetStringSlice("teamEmails"),
		Server: ServerConfig{
			Host:                      conf.GetString("serverHost"),
			Port:                      conf.GetString("serverPort"),
			JWTExpirationDelta:        conf.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: conf.GetDuration("jwtRefreshExpirationDelta"),
		},
		Database: DatabaseConfig{
			DefaultRegion: conf.GetString("defaultRegion"),
			Regions: map[string]RegionConfig{
				"us": {
					URI:  conf.GetString("usDatabaseURI"),
					Name: conf.GetString("usDatabaseName"),
				},
				"dubai": {
					URI:  conf.GetString("dubaiDatabaseURI"),
					Name: conf.GetString("dubaiDatabaseName"),
				},
			},
		},
		Calcom: CalcomConfig{
			APIKey:             conf.GetString("calcomApiKey"),
			Username:           conf.GetString("calcomUsername"),
			BaseURL:            conf.GetString("calcomBaseURL"),
			DefaultTimezone:    conf.GetString("calcomDefaultTimezone"),
			IncludedEventTypes: conf.GetStringSlice("calcomIncludedEventTypes"),
			ExcludedEventTypes: conf.GetStringSlice("calcomExcludedEventTypes"),
			MockFallback:       conf.GetBool("calcomMockFallback"),
		},
	}
}

// Getwd returns the working directory, panicking on failure.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return wd
}
