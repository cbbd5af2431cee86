package ruzapi

import "time"

type Config struct {
	BaseURL     string        `envconfig:"BASE_URL" default:"https://ruz.mstuca.ru"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"30s"`
	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"5"`
	// RetryBaseDelay стартовая задержка экспоненциального бэкоффа
	RetryBaseDelay time.Duration `envconfig:"RETRY_BASE_DELAY" default:"1s"`
	SkipSSL        string        `envconfig:"SKIP_SSL"` // Railway требует строки вместо bool
}

func (c *Config) ShouldSkipSSL() bool {
	return c.SkipSSL == "true" || c.SkipSSL == "1" || c.SkipSSL == "True"
}
