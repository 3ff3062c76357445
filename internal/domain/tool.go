package domain

// Tool is the host-neutral description of a registered tool, as printed by
// `awsdocs tools --format json`.
type Tool struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	InputSchema map[string]any `json:"inputSchema" yaml:"inputSchema"`
}
