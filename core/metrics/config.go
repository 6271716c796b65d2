package metrics

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddress string `json:"prometheus_address"`
	// LogRuns writes every run event to the service log.
	LogRuns bool `json:"log_runs"`
}

// SetDefaults applies the default listen address.
func (c *Config) SetDefaults() {
	if c.PrometheusAddress == "" {
		c.PrometheusAddress = ":9100"
	}
}
