// Package config provides centralized default values for Statecraft
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Session Configuration
	SessionTTL time.Duration

	// Sweep Configuration
	SweepInterval time.Duration
	SweepVerbose  bool

	// Catalog Configuration
	SeedDemoData bool

	// Sysop Authentication
	JWTSecret     string
	SysopPassword string
	SysopTokenTTL time.Duration

	// CORS
	ExtraAllowedOrigins []string
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Session Configuration
	SessionTTL = time.Duration(getEnvInt("SESSION_TTL_MINUTES", 15)) * time.Minute

	// Sweep Configuration
	SweepInterval = time.Duration(getEnvInt("SWEEP_INTERVAL_SECONDS", 60)) * time.Second
	SweepVerbose = getEnvBool("SWEEP_VERBOSE", true)

	// Catalog Configuration
	SeedDemoData = getEnvBool("SEED_DEMO_DATA", true)

	// Sysop Authentication
	JWTSecret = getEnvString("JWT_SECRET", "statecraft-dev-secret")
	SysopPassword = getEnvString("SYSOP_PASSWORD", "")
	SysopTokenTTL = time.Duration(getEnvInt("SYSOP_TOKEN_TTL_HOURS", 12)) * time.Hour

	// CORS
	if origins := getEnvString("EXTRA_ALLOWED_ORIGINS", ""); origins != "" {
		ExtraAllowedOrigins = strings.Split(origins, ",")
	}
}
