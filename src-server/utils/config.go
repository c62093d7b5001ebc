package utils

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"calendarcorp/src-server/ical"
)

type Config struct {
	port string

	location     *time.Location
	databasePath string

	adminToken string

	icsProdID    string
	icsUIDDomain string

	metricCollectionInterval time.Duration

	staticWebClientDir string
}

func NewConfig() *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		location: func() *time.Location {
			timezoneStr := os.Getenv("TIMEZONE")
			var loc *time.Location
			var err error
			switch timezoneStr {
			case "":
				slog.Warn("TIMEZONE is not set, using local timezone", "timezone", time.Local)
				loc = time.Local
			case "UTC":
				slog.Warn("TIMEZONE is set to UTC, using UTC timezone", "timezone", time.UTC)
				loc = time.UTC
			default:
				loc, err = time.LoadLocation(timezoneStr)
				if err != nil {
					slog.Error("invalid timezone", "timezone", timezoneStr, "error", err)
					os.Exit(1)
				}
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),
		databasePath: func() string {
			databasePath := os.Getenv("DATABASE_PATH")
			if databasePath == "" {
				databasePath = "./sqlite.db"
			}
			slog.Debug("env", "DATABASE_PATH", databasePath)
			return databasePath
		}(),

		adminToken: func() string {
			adminToken := os.Getenv("ADMIN_TOKEN")
			if adminToken == "" {
				slog.Warn("ADMIN_TOKEN is not set, admin routes are disabled")
				return ""
			}
			if len(adminToken) < 16 {
				slog.Warn("ADMIN_TOKEN is shorter than 16 characters")
			}
			slog.Debug("env", "ADMIN_TOKEN", adminToken[0:3]+"...")
			return adminToken
		}(),

		icsProdID: func() string {
			icsProdID := os.Getenv("ICS_PRODID")
			if icsProdID == "" {
				icsProdID = ical.DefaultProdID
			}
			slog.Debug("env", "ICS_PRODID", icsProdID)
			return icsProdID
		}(),
		icsUIDDomain: func() string {
			icsUIDDomain := os.Getenv("ICS_UID_DOMAIN")
			if icsUIDDomain == "" {
				icsUIDDomain = ical.DefaultUIDDomain
			}
			slog.Debug("env", "ICS_UID_DOMAIN", icsUIDDomain)
			return icsUIDDomain
		}(),

		metricCollectionInterval: func() time.Duration {
			interval := os.Getenv("METRIC_COLLECTION_INTERVAL")
			if interval == "" {
				interval = "15s"
			}
			duration, err := time.ParseDuration(interval)
			if err != nil || duration <= 0 {
				slog.Error("invalid METRIC_COLLECTION_INTERVAL", "value", interval, "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "METRIC_COLLECTION_INTERVAL", duration)
			return duration
		}(),

		staticWebClientDir: func() string {
			staticWebClientDir := os.Getenv("STATIC_WEB_CLIENT_DIR")
			if staticWebClientDir == "" {
				slog.Info("STATIC_WEB_CLIENT_DIR is not set, not serving a web client")
				return ""
			}
			info, err := os.Stat(staticWebClientDir)
			if err != nil {
				slog.Error("can't get info of STATIC_WEB_CLIENT_DIR", "error", err)
				os.Exit(1)
			}
			if !info.IsDir() {
				slog.Error("STATIC_WEB_CLIENT_DIR is not a directory", "path", staticWebClientDir)
				os.Exit(1)
			}

			slog.Debug("env", "STATIC_WEB_CLIENT_DIR", staticWebClientDir)
			return filepath.Clean(staticWebClientDir)
		}(),
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get TIMEZONE env
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get DATABASE_PATH env, default to ./sqlite.db
func (c *Config) GetDatabasePath() string {
	return c.databasePath
}

// Get ADMIN_TOKEN env; empty disables the admin routes
func (c *Config) GetAdminToken() string {
	return c.adminToken
}

// Get ICS_PRODID env
func (c *Config) GetIcsProdID() string {
	return c.icsProdID
}

// Get ICS_UID_DOMAIN env
func (c *Config) GetIcsUIDDomain() string {
	return c.icsUIDDomain
}

// Get METRIC_COLLECTION_INTERVAL env, default to 15s
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}

// Get STATIC_WEB_CLIENT_DIR env
func (c *Config) GetStaticWebClientDir() string {
	return c.staticWebClientDir
}
