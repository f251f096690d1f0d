package hostapi

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Config is the file form of a client: base URL, client-wide headers and
// the operation table.
//
//	baseURL: https://api.example.com
//	headers:
//	  x-client: web
//	operations:
//	  getUser:
//	    path: POST api/loginUp
//	    headers: {x-f: xx}
type Config struct {
	BaseURL    string            `yaml:"baseURL"`
	Headers    map[string]string `yaml:"headers,omitempty"`
	Operations Table             `yaml:"operations"`
}

// LoadConfig decodes a YAML config. Unknown fields are rejected so typos in
// the table surface at startup.
func LoadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return nil, configError("config is empty", err)
		}
		return nil, configError("config cannot be decoded", err)
	}
	if len(cfg.Operations) == 0 {
		return nil, configError("config defines no operations", nil)
	}
	for name, ep := range cfg.Operations {
		if _, _, err := ParseDescriptor(ep.Path); err != nil {
			return nil, &ClientError{Type: ErrorTypeConfiguration, Message: "invalid descriptor", Cause: err, Operation: name}
		}
	}
	return &cfg, nil
}

// LoadConfigFile reads and decodes the YAML config at path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, configError(fmt.Sprintf("cannot open config %s", path), err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Options converts the base URL and headers to client options.
func (c *Config) Options() []Option {
	var opts []Option
	if c.BaseURL != "" {
		opts = append(opts, WithBaseURL(c.BaseURL))
	}
	keys := make([]string, 0, len(c.Headers))
	for k := range c.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		opts = append(opts, WithHeader(k, c.Headers[k]))
	}
	return opts
}

// NewClient builds a client from the config; extra options are applied last.
func (c *Config) NewClient(extra ...Option) (*Client, error) {
	return New(c.Operations, append(c.Options(), extra...)...)
}
