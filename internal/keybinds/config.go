package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Config is the user's keybinding overrides. Each section maps an action
// to a comma-separated key list, e.g. {"list": {"delete": "x,delete"}}.
// Listing an action replaces all of its default keys in that context.
type Config struct {
	Version   string            `json:"version"`
	Global    map[string]string `json:"global,omitempty"`
	List      map[string]string `json:"list,omitempty"`
	Search    map[string]string `json:"search,omitempty"`
	Detail    map[string]string `json:"detail,omitempty"`
	Editor    map[string]string `json:"editor,omitempty"`
	Profile   map[string]string `json:"profile,omitempty"`
	Password  map[string]string `json:"password,omitempty"`
	Confirm   map[string]string `json:"confirm,omitempty"`
	Activity  map[string]string `json:"activity,omitempty"`
	Help      map[string]string `json:"help,omitempty"`
	Modal     map[string]string `json:"modal,omitempty"`
	TextInput map[string]string `json:"text_input,omitempty"`
	Viewer    map[string]string `json:"viewer,omitempty"`
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:    c.Global,
		ContextList:      c.List,
		ContextSearch:    c.Search,
		ContextDetail:    c.Detail,
		ContextEditor:    c.Editor,
		ContextProfile:   c.Profile,
		ContextPassword:  c.Password,
		ContextConfirm:   c.Confirm,
		ContextActivity:  c.Activity,
		ContextHelp:      c.Help,
		ContextModal:     c.Modal,
		ContextTextInput: c.TextInput,
		ContextViewer:    c.Viewer,
	}
}

// LoadConfig loads keybinding configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}
	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// splitKeys parses "a, b,c" into its keys
func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// ApplyConfig applies user configuration to a registry. Unknown actions
// are rejected; the registry is left unchanged on error.
func ApplyConfig(registry *Registry, config *Config) error {
	staged := registry.Clone()

	sections := config.sections()
	contexts := make([]Context, 0, len(sections))
	for c := range sections {
		contexts = append(contexts, c)
	}
	sort.Slice(contexts, func(i, j int) bool { return contexts[i] < contexts[j] })

	for _, context := range contexts {
		for actionStr, keyList := range sections[context] {
			action := Action(actionStr)
			if !action.IsKnown() {
				return fmt.Errorf("unknown action '%s' in section '%s'", actionStr, context)
			}
			staged.Unbind(context, action)
			for _, key := range splitKeys(keyList) {
				staged.Register(context, key, action)
			}
		}
	}

	if err := staged.Validate(); err != nil {
		return err
	}

	registry.replaceWith(staged)
	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}
		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return registry, nil
}

// ExportDefaults renders the default registry as a Config, useful as a
// starting point for keybinds.json
func ExportDefaults() *Config {
	r := NewDefaultRegistry()
	config := &Config{Version: "1.0"}

	export := func(context Context) map[string]string {
		byAction := map[Action][]string{}
		for _, b := range r.ListBindings(context) {
			byAction[b.Action] = append(byAction[b.Action], b.Key)
		}
		out := make(map[string]string, len(byAction))
		for action, keys := range byAction {
			sort.Strings(keys)
			out[string(action)] = strings.Join(keys, ",")
		}
		return out
	}

	config.Global = export(ContextGlobal)
	config.List = export(ContextList)
	config.Search = export(ContextSearch)
	config.Detail = export(ContextDetail)
	config.Editor = export(ContextEditor)
	config.Profile = export(ContextProfile)
	config.Password = export(ContextPassword)
	config.Confirm = export(ContextConfirm)
	config.Activity = export(ContextActivity)
	config.Help = export(ContextHelp)
	config.Modal = export(ContextModal)
	config.TextInput = export(ContextTextInput)
	config.Viewer = export(ContextViewer)
	return config
}
