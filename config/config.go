package config

import (
	"encoding/json"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 int    `json:"port"`
	DatabasePath         string `json:"databasePath"`
	ExportFolderPath     string `json:"exportFolderPath"`
	Locale               string `json:"locale"`
	Currency             string `json:"currency"`
	ScheduleCheckMinutes int    `json:"scheduleCheckMinutes"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./retailmind_config.json"

func defaults() Config {
	return Config{
		Port:                 8080,
		DatabasePath:         "./retailmind.db",
		ExportFolderPath:     "./exports",
		Locale:               "en-US",
		Currency:             "USD",
		ScheduleCheckMinutes: 1,
	}
}

// applyEnv overrides file values from the environment (.env included).
func applyEnv(c Config) Config {
	godotenv.Load()
	if v := os.Getenv("RETAILMIND_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Port = p
		}
	}
	if v := os.Getenv("RETAILMIND_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("RETAILMIND_EXPORT_DIR"); v != "" {
		c.ExportFolderPath = v
	}
	if v := os.Getenv("RETAILMIND_LOCALE"); v != "" {
		c.Locale = v
	}
	if v := os.Getenv("RETAILMIND_CURRENCY"); v != "" {
		c.Currency = v
	}
	return c
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	c := defaults()
	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = applyEnv(c)
			return cfg, nil
		}
		return Config{}, err
	}
	if err := json.Unmarshal(file, &c); err != nil {
		return Config{}, err
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ScheduleCheckMinutes == 0 {
		c.ScheduleCheckMinutes = 1
	}
	cfg = applyEnv(c)
	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
