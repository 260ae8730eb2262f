package staging

// Config defines analyzer-related settings.
type Config struct {
	// Workers bounds the number of trains analyzed concurrently.
	// A value of 1 keeps the batch strictly sequential.
	Workers int `json:"workers"`
}

// SetDefaults normalizes unset or nonsensical values.
func (c *Config) SetDefaults() {
	if c.Workers <= 0 {
		c.Workers = 1
	}
}
