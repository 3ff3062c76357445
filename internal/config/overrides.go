package config

// RuntimeOverrides holds configuration values that can be overridden at runtime
// via CLI flags or other means
type RuntimeOverrides struct {
	LogLevel       *string
	LogFile        *string
	HTTPAddr       *string
	HistoryEnabled *bool
	// Verbose logs where every configuration value came from.
	Verbose bool
}

const flagSource = "command line flag"

func (o *RuntimeOverrides) apply(cfg *ConfigSchema) {
	set := func(key string, value interface{}) {
		cfg.sources[key] = append(cfg.sources[key], configSource{value: value, source: flagSource})
	}

	if o.LogLevel != nil {
		cfg.Log.Level = *o.LogLevel
		set("log.level", *o.LogLevel)
	}
	if o.LogFile != nil {
		cfg.Log.File = *o.LogFile
		set("log.file", *o.LogFile)
	}
	if o.HTTPAddr != nil {
		cfg.Server.HTTPAddr = *o.HTTPAddr
		set("server.httpaddr", *o.HTTPAddr)
	}
	if o.HistoryEnabled != nil {
		cfg.History.Enabled = *o.HistoryEnabled
		set("history.enabled", *o.HistoryEnabled)
	}
}
