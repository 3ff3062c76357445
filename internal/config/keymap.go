package config

import "encoding/json"

// Pager key bindings
const (
	KeyActionQuit       = "quit"
	KeyActionToggleHelp = "toggleHelp"
	KeyActionNextPage   = "nextPage"
	KeyActionPrevPage   = "prevPage"
	KeyActionScrollDown = "scrollDown"
	KeyActionScrollUp   = "scrollUp"
)

type KeyMap struct {
	Quit       []string `mapstructure:"quit" json:"quit" jsonschema:"description=Exit the pager,default=q"`
	ToggleHelp []string `mapstructure:"toggleHelp" json:"toggleHelp" jsonschema:"description=Toggle help display,default=?"`
	NextPage   []string `mapstructure:"nextPage" json:"nextPage" jsonschema:"description=Fetch the next page,default=n"`
	PrevPage   []string `mapstructure:"prevPage" json:"prevPage" jsonschema:"description=Go back to the previous page,default=p"`
	ScrollDown []string `mapstructure:"scrollDown" json:"scrollDown" jsonschema:"description=Scroll down,default=j"`
	ScrollUp   []string `mapstructure:"scrollUp" json:"scrollUp" jsonschema:"description=Scroll up,default=k"`

	keyCache map[string][]string
}

// Get key bindings for an action
func (k *KeyMap) GetKeys(action string) []string {
	if k.keyCache == nil {
		k.keyCache = make(map[string][]string)
		jsonBytes, err := json.Marshal(k)
		if err != nil {
			return nil
		}
		if err := json.Unmarshal(jsonBytes, &k.keyCache); err != nil {
			return nil
		}
	}

	return k.keyCache[action]
}

// Action returns the action bound to key, or "".
func (k *KeyMap) Action(key string) string {
	for _, action := range []string{KeyActionQuit, KeyActionToggleHelp, KeyActionNextPage, KeyActionPrevPage, KeyActionScrollDown, KeyActionScrollUp} {
		for _, bound := range k.GetKeys(action) {
			if bound == key {
				return action
			}
		}
	}
	return ""
}
