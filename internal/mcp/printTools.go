package mcp

import (
	"fmt"
	"io"
	"strings"

	"github.com/isaacphi/awsdocs/internal/schema"
	"github.com/isaacphi/awsdocs/internal/tool"
)

// PrintTools writes the imported tools grouped by server, in YAML layout.
func (c *Client) PrintTools(w io.Writer) {
	tools := c.Tools()

	var order []string
	byServer := make(map[string][]*tool.Tool)
	for _, t := range tools {
		server, _, _ := strings.Cut(t.ID, nameSeparator)
		if _, seen := byServer[server]; !seen {
			order = append(order, server)
		}
		byServer[server] = append(byServer[server], t)
	}

	for _, server := range order {
		fmt.Fprintf(w, "%s:\n", server)
		for _, t := range byServer[server] {
			_, name, _ := strings.Cut(t.ID, nameSeparator)
			fmt.Fprintf(w, "  %s:\n", name)
			PrintTool(w, t, "    ")
		}
		fmt.Fprintln(w)
	}
}

// PrintTool writes one tool's description and parameters at the given indent.
func PrintTool(w io.Writer, t *tool.Tool, indent string) {
	fmt.Fprintf(w, "%sdescription: %s\n", indent, firstLine(t.Description))
	fmt.Fprintf(w, "%sparameters:\n", indent)

	v := t.Validator()
	fmt.Fprintf(w, "%s  type: %s\n", indent, v.Kind())

	if required := v.RequiredFields(); len(required) > 0 {
		fmt.Fprintf(w, "%s  required:\n", indent)
		for _, req := range required {
			fmt.Fprintf(w, "%s    - %s\n", indent, req)
		}
	}

	if fields := v.Fields(); len(fields) > 0 {
		fmt.Fprintf(w, "%s  properties:\n", indent)
		for _, f := range fields {
			fmt.Fprintf(w, "%s    %s:\n", indent, f.Name)
			printProperty(w, f.Validator, indent+"      ")
		}
	}
}

func printProperty(w io.Writer, v *schema.Validator, indent string) {
	fmt.Fprintf(w, "%stype: %s\n", indent, v.Kind())
	if d := v.Description(); d != "" {
		fmt.Fprintf(w, "%sdescription: %s\n", indent, firstLine(d))
	}
	if enum := v.Enum(); len(enum) > 0 {
		fmt.Fprintf(w, "%senum:\n", indent)
		for _, e := range enum {
			fmt.Fprintf(w, "%s  - %s\n", indent, e)
		}
	}
	lo, hi := v.Bounds()
	if lo != nil {
		fmt.Fprintf(w, "%sminimum: %v\n", indent, *lo)
	}
	if hi != nil {
		fmt.Fprintf(w, "%smaximum: %v\n", indent, *hi)
	}
	if def := v.Default(); def != nil {
		fmt.Fprintf(w, "%sdefault: %v\n", indent, def)
	}
	if items := v.Items(); items != nil && v.Kind() == schema.KindArray {
		fmt.Fprintf(w, "%sitems:\n", indent)
		fmt.Fprintf(w, "%s  type: %s\n", indent, items.Kind())
		if d := items.Description(); d != "" {
			fmt.Fprintf(w, "%s  description: %s\n", indent, firstLine(d))
		}
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
