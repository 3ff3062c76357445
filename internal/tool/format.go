package tool

import "encoding/json"

// FormatResult renders a tool result as text: strings as they are, anything
// else as indented JSON.
func FormatResult(result any) (string, error) {
	switch v := result.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
