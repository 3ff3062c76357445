package config

import "time"

type Log struct {
	Level string `mapstructure:"level" json:"level" validate:"oneof=DEBUG INFO WARN ERROR" jsonschema:"enum=DEBUG,enum=INFO,enum=WARN,enum=ERROR,default=INFO"`
	File  string `mapstructure:"file" json:"file,omitempty" jsonschema:"description=Write logs to this file instead of stderr"`
}

type Docs struct {
	URLPattern         string        `mapstructure:"urlPattern" json:"urlPattern" validate:"required" jsonschema:"description=Regular expression a documentation URL must match"`
	Domain             string        `mapstructure:"domain" json:"domain" validate:"required,hostname"`
	RequiredSuffix     string        `mapstructure:"requiredSuffix" json:"requiredSuffix" validate:"required"`
	UserAgent          string        `mapstructure:"userAgent" json:"userAgent" validate:"required"`
	Timeout            time.Duration `mapstructure:"timeout" json:"timeout" validate:"gt=0" jsonschema:"type=string,description=Per request timeout such as 30s"`
	SearchURL          string        `mapstructure:"searchURL" json:"searchURL" validate:"required,url"`
	RecommendationsURL string        `mapstructure:"recommendationsURL" json:"recommendationsURL" validate:"required,url"`
	Locale             string        `mapstructure:"locale" json:"locale" validate:"required"`
}

type History struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled"`
	DBPath  string `mapstructure:"dbPath" json:"dbPath" validate:"required_if=Enabled true"`
}

type Server struct {
	Name     string `mapstructure:"name" json:"name" validate:"required"`
	Version  string `mapstructure:"version" json:"version" validate:"required"`
	HTTPAddr string `mapstructure:"httpAddr" json:"httpAddr" jsonschema:"description=Listen address used by serve --http"`
}

type MCPServer struct {
	Command string            `mapstructure:"command" json:"command" validate:"required"`
	Args    []string          `mapstructure:"args" json:"args,omitempty"`
	Env     map[string]string `mapstructure:"env" json:"env,omitempty"`
}

type ConfigSchema struct {
	Log        Log                  `mapstructure:"log" json:"log"`
	Docs       Docs                 `mapstructure:"docs" json:"docs"`
	History    History              `mapstructure:"history" json:"history"`
	Server     Server               `mapstructure:"server" json:"server"`
	Pager      KeyMap               `mapstructure:"pager" json:"pager"`
	MCPServers map[string]MCPServer `mapstructure:"mcpServers" json:"mcpServers,omitempty" validate:"dive"`

	// Internal fields for printing
	sources map[string][]configSource
}
