package keybinds

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Binding represents a keybinding mapping
type Binding struct {
	Key     string
	Action  Action
	Context Context
}

// parents defines where a context falls back to when a key is unbound.
// Every chain ends at ContextGlobal.
var parents = map[Context]Context{
	ContextDetail:   ContextModal,
	ContextEditor:   ContextModal,
	ContextPassword: ContextModal,
	ContextConfirm:  ContextModal,
	ContextActivity: ContextViewer,
	ContextHelp:     ContextViewer,
	ContextViewer:   ContextModal,
}

// chain returns context followed by its fallbacks
func chain(context Context) []Context {
	out := []Context{context}
	for c := context; ; {
		p, ok := parents[c]
		if !ok {
			break
		}
		out = append(out, p)
		c = p
	}
	if context != ContextGlobal {
		out = append(out, ContextGlobal)
	}
	return out
}

// Registry manages keybinding mappings and matching
type Registry struct {
	mu sync.RWMutex

	// bindings maps context -> key -> action
	bindings map[Context]map[string]Action

	// sequences holds the multi-key bindings (like "gg") per context
	sequences map[Context]map[string]bool

	// pending tracks the first key of a multi-key sequence
	pending map[Context]string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		bindings:  make(map[Context]map[string]Action),
		sequences: make(map[Context]map[string]bool),
		pending:   make(map[Context]string),
	}
}

// Register adds a keybinding to the registry
func (r *Registry) Register(context Context, key string, action Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bindings[context] == nil {
		r.bindings[context] = make(map[string]Action)
	}
	r.bindings[context][key] = action
}

// RegisterSequence binds a multi-key sequence typed one key at a time
func (r *Registry) RegisterSequence(context Context, sequence string, action Action) {
	r.Register(context, sequence, action)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sequences[context] == nil {
		r.sequences[context] = make(map[string]bool)
	}
	r.sequences[context][sequence] = true
}

// RegisterMultiple registers multiple keybindings for the same action
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	for _, key := range keys {
		r.Register(context, key, action)
	}
}

// Unbind removes every key bound to action in context
func (r *Registry) Unbind(context Context, action Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, act := range r.bindings[context] {
		if act == action {
			delete(r.bindings[context], key)
		}
	}
}

// Match resolves key in context, falling back along the context chain
func (r *Registry) Match(context Context, key string) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.matchLocked(context, key)
}

func (r *Registry) matchLocked(context Context, key string) (Action, bool) {
	for _, c := range chain(context) {
		if action, ok := r.bindings[c][key]; ok {
			return action, true
		}
	}
	return "", false
}

// isPrefixLocked reports whether key starts a longer bound sequence
func (r *Registry) isPrefixLocked(context Context, key string) bool {
	for _, c := range chain(context) {
		for seq := range r.sequences[c] {
			if len(seq) > len(key) && strings.HasPrefix(seq, key) {
				return true
			}
		}
	}
	return false
}

// MatchMultiKey handles sequences like "gg". It returns the action,
// whether the match is complete, and whether key is a pending prefix.
func (r *Registry) MatchMultiKey(context Context, key string) (Action, bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.pending[context]; ok {
		delete(r.pending, context)
		if action, ok := r.matchLocked(context, prev+key); ok {
			return action, true, false
		}
		return "", false, false
	}

	if len(key) == 1 && r.isPrefixLocked(context, key) {
		r.pending[context] = key
		return "", false, true
	}

	action, ok := r.matchLocked(context, key)
	return action, ok, false
}

// ClearMultiKeyState clears any pending multi-key state for a context
func (r *Registry) ClearMultiKeyState(context Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, context)
}

// GetBinding returns the sorted keys bound to action, from the first
// context in the chain that binds it
func (r *Registry) GetBinding(context Context, action Action) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range chain(context) {
		var keys []string
		for key, act := range r.bindings[c] {
			if act == action {
				keys = append(keys, key)
			}
		}
		if len(keys) > 0 {
			sort.Strings(keys)
			return keys
		}
	}
	return nil
}

// GetBindingString returns a human-readable string of keys bound to an action
func (r *Registry) GetBindingString(context Context, action Action) string {
	keys := r.GetBinding(context, action)
	if len(keys) == 0 {
		return "unbound"
	}
	return strings.Join(keys, "/")
}

// ListBindings returns the bindings of context itself, sorted by key
func (r *Registry) ListBindings(context Context) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bindings []Binding
	for key, action := range r.bindings[context] {
		bindings = append(bindings, Binding{Key: key, Action: action, Context: context})
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].Key < bindings[j].Key })
	return bindings
}

// HasBinding checks if a key is bound in a context or its fallbacks
func (r *Registry) HasBinding(context Context, key string) bool {
	_, ok := r.Match(context, key)
	return ok
}

// Validate checks that reserved keys keep their action and that every
// bound action is known
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.bindings[ContextGlobal]["ctrl+c"] != ActionQuitForce {
		return fmt.Errorf("ctrl+c must stay bound to %s in context '%s'", ActionQuitForce, ContextGlobal)
	}
	for context, keys := range r.bindings {
		for key, action := range keys {
			if key == "" {
				return fmt.Errorf("empty key in context '%s'", context)
			}
			if !action.IsKnown() {
				return fmt.Errorf("unknown action '%s' for key '%s' in context '%s'", action, key, context)
			}
		}
	}
	return nil
}

// Clone creates a deep copy of the registry
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clone := NewRegistry()
	for context, keys := range r.bindings {
		for key, action := range keys {
			if r.sequences[context][key] {
				clone.RegisterSequence(context, key, action)
			} else {
				clone.Register(context, key, action)
			}
		}
	}
	return clone
}

// Merge combines bindings from another registry, with other taking precedence
func (r *Registry) Merge(other *Registry) {
	other.mu.RLock()
	defer other.mu.RUnlock()
	for context, keys := range other.bindings {
		for key, action := range keys {
			r.Register(context, key, action)
		}
	}
}

// replaceWith swaps in the bindings of other
func (r *Registry) replaceWith(other *Registry) {
	other.mu.RLock()
	bindings, sequences := other.bindings, other.sequences
	other.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = bindings
	r.sequences = sequences
	r.pending = make(map[Context]string)
}
