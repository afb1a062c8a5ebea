package config

import (
	"sync"
)

var (
	// globalConfig holds the process-wide configuration.
	globalConfig *Config

	// configMutex protects access to globalConfig.
	configMutex sync.RWMutex

	// initOnce makes Initialize load at most once.
	initOnce sync.Once
)

// Initialize loads configuration from path (empty for defaults only) with
// environment overrides and stores it as the global configuration. Only the
// first call does any work; later calls return nil without reloading.
func Initialize(path string) error {
	var initErr error

	initOnce.Do(func() {
		cfg, err := LoadConfigWithEnvOverrides(path)
		if err != nil {
			initErr = err
			return
		}
		SetConfig(cfg)
	})

	return initErr
}

// GetConfig returns the global configuration, or nil before a successful
// Initialize or SetConfig. Safe for concurrent use.
//
// Packages below cmd/ should receive their config section explicitly
// instead of calling this.
func GetConfig() *Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// SetConfig replaces the global configuration. The CLI uses it after applying
// flag overrides; tests use it to inject a fixture.
func SetConfig(cfg *Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = cfg
}
