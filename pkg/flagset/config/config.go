package config

// Config wraps a decoded YAML or JSON document for typed value extraction.
// Accessors return the supplied default when a key is missing or holds a
// value of the wrong type.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map.
// If data is nil, an empty Config is returned.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (c Config) String(key, defaultVal string) string {
	if s, ok := c.data[key].(string); ok {
		return s
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not a bool.
func (c Config) Bool(key string, defaultVal bool) bool {
	if b, ok := c.data[key].(bool); ok {
		return b
	}
	return defaultVal
}

// Section returns the nested mapping under key. The second result is false
// if key is missing or is not a mapping.
func (c Config) Section(key string) (Config, bool) {
	m, ok := c.data[key].(map[string]any)
	if !ok {
		return Config{}, false
	}
	return New(m), true
}

// List returns the sequence under key. The second result is false if key is
// missing or is not a sequence.
func (c Config) List(key string) ([]any, bool) {
	l, ok := c.data[key].([]any)
	return l, ok
}

// Has returns true if the key exists in the config.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Raw returns the underlying map.
// The returned map should not be modified.
func (c Config) Raw() map[string]any {
	return c.data
}
