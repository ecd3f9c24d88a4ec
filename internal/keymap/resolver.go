package keymap

import "slices"

// Resolver maps key strings to actions. A key may mean different actions
// in different contexts; the caller lists the contexts it wants searched,
// most specific first.
type Resolver struct {
	byKey    map[string][]Binding
	byAction map[Action][]string
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		byKey:    make(map[string][]Binding),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.byKey[key] = append(r.byKey[key], b)
			if !slices.Contains(r.byAction[b.Action], key) {
				r.byAction[b.Action] = append(r.byAction[b.Action], key)
			}
		}
	}
	return r
}

// Resolve returns the action bound to key in the first of contexts that
// binds it. With no contexts, the first binding of key wins. It returns ""
// for unbound keys.
func (r *Resolver) Resolve(key string, contexts ...string) Action {
	bound := r.byKey[key]
	if len(bound) == 0 {
		return ""
	}
	if len(contexts) == 0 {
		return bound[0].Action
	}
	for _, ctx := range contexts {
		for _, b := range bound {
			if b.Context == ctx {
				return b.Action
			}
		}
	}
	return ""
}

// KeysFor returns the keys bound to an action, in binding order.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// Conflicts returns the keys bound to more than one action within the
// same context, sorted.
func (r *Resolver) Conflicts() []string {
	var out []string
	for key, bound := range r.byKey {
		seen := make(map[string]Action)
		for _, b := range bound {
			if a, ok := seen[b.Context]; ok && a != b.Action {
				out = append(out, key)
				break
			}
			seen[b.Context] = b.Action
		}
	}
	slices.Sort(out)
	return out
}
