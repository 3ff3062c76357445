package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

/*
Config System Design:
This configuration system implements a hierarchical config with the following precedence
(highest to lowest priority):

1. Runtime overrides (CLI flags)
2. Environment variables (AWSDOCS_<SECTION>_<KEY>, e.g. AWSDOCS_DOCS_TIMEOUT)
3. Local project config (.awsdocs/*.awsdocs.{yaml,json})
4. Global user config ($XDG_CONFIG_HOME/awsdocs/*.awsdocs.{yaml,json})
5. Default values (embedded defaults.awsdocs.yaml)

The system supports:
- Multiple config files in each directory, merged alphabetically
- Automatic merging of lists (they combine)
- Deep merging of maps
- Override of scalar values
- Tracking of where each config value originated
- Schema validation of the final config

Example:
If you have these files:
~/.config/awsdocs/servers.awsdocs.yaml:  { mcpServers: { git: {...} } }
./.awsdocs/servers.awsdocs.yaml:         { mcpServers: { fs: {...} } }
Both servers end up configured.
*/

//go:embed defaults.awsdocs.yaml
var defaultsYAML []byte

const (
	appName    = "awsdocs"
	envPrefix  = "AWSDOCS"
	fileSuffix = "." + appName
)

type configSource struct {
	value  interface{}
	source string
}

type loader struct {
	v       *viper.Viper
	sources map[string][]configSource
	getenv  func(string) string
}

// New loads, merges and validates the configuration from every source.
func New(overrides *RuntimeOverrides) (*ConfigSchema, error) {
	globalDir, err := globalConfigDir()
	if err != nil {
		return nil, err
	}
	return load([]string{globalDir, "." + appName}, os.Getenv, overrides)
}

func globalConfigDir() (string, error) {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, appName), nil
}

func load(dirs []string, getenv func(string) string, overrides *RuntimeOverrides) (*ConfigSchema, error) {
	l := &loader{
		v:       viper.New(),
		sources: make(map[string][]configSource),
		getenv:  getenv,
	}

	if err := l.loadDefaults(); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}
	if err := l.loadConfigs(dirs); err != nil {
		return nil, err
	}
	l.loadEnv()

	var cfg ConfigSchema
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.sources = l.sources

	if overrides != nil {
		overrides.apply(&cfg)
		if overrides.Verbose {
			l.logConfigSources()
		}
	}

	cfg.Log.Level = strings.ToUpper(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (l *loader) loadDefaults() error {
	l.v.SetConfigType("yaml")
	if err := l.v.ReadConfig(bytes.NewReader(defaultsYAML)); err != nil {
		return fmt.Errorf("could not read defaults: %w", err)
	}
	return nil
}

// findConfigFiles returns all *.awsdocs.{yaml,json} files in a directory
func findConfigFiles(dir string) ([]string, error) {
	var files []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, fileSuffix+".yaml") ||
			strings.HasSuffix(name, fileSuffix+".json") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (l *loader) loadConfigs(dirs []string) error {
	for _, dir := range dirs {
		files, err := findConfigFiles(dir)
		if err != nil && !os.IsNotExist(err) {
			return err
		}

		for _, f := range files {
			v := viper.New()
			v.SetConfigFile(f)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("error reading config file %s: %w", f, err)
			}

			settings := v.AllSettings()
			l.trackSources(settings, f)

			if err := l.mergeConfig(settings); err != nil {
				return fmt.Errorf("error merging config from %s: %w", f, err)
			}
		}
	}
	return nil
}

// loadEnv applies AWSDOCS_* variables for every scalar key in the schema.
func (l *loader) loadEnv() {
	for _, key := range leafKeys() {
		envVar := envName(key)
		val := l.getenv(envVar)
		if val == "" {
			continue
		}
		l.v.Set(key, val)

		displayVal := interface{}(val)
		if isSecretKey(key) {
			displayVal = "[REDACTED]"
		}
		lower := strings.ToLower(key)
		l.sources[lower] = append(l.sources[lower], configSource{
			value:  displayVal,
			source: fmt.Sprintf("%s environment variable", envVar),
		})
	}
}

func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func (l *loader) mergeConfig(settings map[string]interface{}) error {
	for key, value := range settings {
		existing := l.v.Get(key)
		if existing == nil {
			l.v.Set(key, value)
			continue
		}

		switch existingVal := existing.(type) {
		case []interface{}:
			newSlice, ok := value.([]interface{})
			if !ok {
				return fmt.Errorf("type mismatch for key %s: expected slice, got %T", key, value)
			}
			l.v.Set(key, appendUnique(existingVal, newSlice))

		case map[string]interface{}:
			newMap, ok := value.(map[string]interface{})
			if !ok {
				return fmt.Errorf("type mismatch for key %s: expected map, got %T", key, value)
			}
			l.v.Set(key, mergeMapRecursive(existingVal, newMap))

		default:
			l.v.Set(key, value)
		}
	}
	return nil
}

func appendUnique(existing, add []interface{}) []interface{} {
	seen := make(map[interface{}]bool)
	combined := make([]interface{}, 0, len(existing)+len(add))
	for _, list := range [][]interface{}{existing, add} {
		for _, v := range list {
			if !seen[v] {
				seen[v] = true
				combined = append(combined, v)
			}
		}
	}
	return combined
}

func mergeMapRecursive(existing, new map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})

	for k, v := range existing {
		result[k] = v
	}

	for k, v := range new {
		if existing[k] == nil {
			result[k] = v
			continue
		}

		switch existingVal := existing[k].(type) {
		case map[string]interface{}:
			if newVal, ok := v.(map[string]interface{}); ok {
				result[k] = mergeMapRecursive(existingVal, newVal)
			} else {
				result[k] = v
			}
		case []interface{}:
			if newVal, ok := v.([]interface{}); ok {
				result[k] = appendUnique(existingVal, newVal)
			} else {
				result[k] = v
			}
		default:
			result[k] = v
		}
	}

	return result
}

// trackSources records the file each leaf value came from, keyed by its
// lowercased dotted path.
func (l *loader) trackSources(settings map[string]interface{}, filename string) {
	for key, value := range flatten("", settings) {
		l.sources[key] = append(l.sources[key], configSource{
			value:  value,
			source: filename,
		})
	}
}

func flatten(prefix string, settings map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for k, v := range settings {
		key := strings.ToLower(k)
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := v.(map[string]interface{}); ok {
			for nk, nv := range flatten(key, nested) {
				out[nk] = nv
			}
			continue
		}
		out[key] = v
	}
	return out
}

func (l *loader) logConfigSources() {
	log.Println("Configuration values and their sources:")

	keys := make([]string, 0, len(l.sources))
	for key := range l.sources {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		sourceList := l.sources[key]
		log.Printf("Key: %s", key)

		switch l.v.Get(key).(type) {
		case []interface{}:
			// every source contributes to a merged list
			for _, source := range sourceList {
				if isSecretKey(key) {
					log.Printf("  - [REDACTED] from %s", source.source)
				} else {
					log.Printf("  - %v from %s", source.value, source.source)
				}
			}
		default:
			last := sourceList[len(sourceList)-1]
			if isSecretKey(key) {
				log.Printf("  - [REDACTED] from %s", last.source)
			} else {
				log.Printf("  - %v from %s", last.value, last.source)
			}
		}
	}
}

// Validate validates the configuration against the schema
func (s *ConfigSchema) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}

	if _, err := regexp.Compile(s.Docs.URLPattern); err != nil {
		return fmt.Errorf("docs.urlPattern %q is not a valid regular expression: %w", s.Docs.URLPattern, err)
	}
	if s.Server.HTTPAddr == "" {
		return nil
	}
	if !strings.Contains(s.Server.HTTPAddr, ":") {
		return fmt.Errorf("server.httpAddr %q must be host:port", s.Server.HTTPAddr)
	}

	return nil
}
