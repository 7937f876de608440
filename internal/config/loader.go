package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Storage driver names accepted by CAMPUS_STORAGE_DRIVER.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Config captures environment driven configuration values for the booking core.
type Config struct {
	StorageDriver   string
	SQLiteDSN       string
	DataDir         string
	AdminSessionTTL time.Duration
}

// Load parses configuration values from the current process environment.
//
// The loader applies sensible defaults for optional fields while validating
// provided values and reporting localized error messages for bad entries.
func Load() (Config, error) {
	cfg := Config{
		StorageDriver:   DriverSQLite,
		SQLiteDSN:       "file:campus.db?_foreign_keys=on",
		DataDir:         "data",
		AdminSessionTTL: 24 * time.Hour,
	}

	invalid := make([]string, 0, 2)

	if driver := strings.TrimSpace(os.Getenv("CAMPUS_STORAGE_DRIVER")); driver != "" {
		switch driver {
		case DriverMemory, DriverFile, DriverSQLite:
			cfg.StorageDriver = driver
		default:
			invalid = append(invalid, "CAMPUS_STORAGE_DRIVER")
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("CAMPUS_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if dir := strings.TrimSpace(os.Getenv("CAMPUS_DATA_DIR")); dir != "" {
		cfg.DataDir = dir
	}

	if ttlValue := strings.TrimSpace(os.Getenv("CAMPUS_ADMIN_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "CAMPUS_ADMIN_SESSION_TTL")
		} else {
			cfg.AdminSessionTTL = ttl
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("環境変数の値が不正です: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
