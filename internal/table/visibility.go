package table

// Visibility keeps the subset of columns to render in sync with the column
// set. Keys it has never seen start visible; keys it has seen keep whatever
// visibility the user gave them; keys no longer present disappear.
type Visibility struct {
	universe []string
	known    map[string]struct{}
	visible  map[string]struct{}
	loading  bool
}

// NewVisibility shows every key.
func NewVisibility(keys []string) *Visibility {
	v := &Visibility{
		known:   make(map[string]struct{}, len(keys)),
		visible: make(map[string]struct{}, len(keys)),
	}
	v.Reconcile(keys)
	return v
}

// Reconcile applies a new ordered set of togglable keys.
func (v *Visibility) Reconcile(keys []string) {
	next := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		_, seen := v.known[key]
		_, shown := v.visible[key]
		if !seen || shown {
			next[key] = struct{}{}
		}
		v.known[key] = struct{}{}
	}
	v.universe = append([]string(nil), keys...)
	v.visible = next
}

// Restore hides the given keys and shows every other key of the universe.
func (v *Visibility) Restore(hidden []string) {
	skip := make(map[string]struct{}, len(hidden))
	for _, key := range hidden {
		skip[key] = struct{}{}
	}
	v.visible = make(map[string]struct{}, len(v.universe))
	for _, key := range v.universe {
		if _, ok := skip[key]; !ok {
			v.visible[key] = struct{}{}
		}
	}
}

// SetLoading blocks toggles while data is loading.
func (v *Visibility) SetLoading(loading bool) {
	v.loading = loading
}

// Toggle shows or hides key. It reports whether the visible set changed.
func (v *Visibility) Toggle(key string, visible bool) bool {
	if v.loading || !v.inUniverse(key) {
		return false
	}
	_, shown := v.visible[key]
	if shown == visible {
		return false
	}
	if visible {
		v.visible[key] = struct{}{}
	} else {
		delete(v.visible, key)
	}
	return true
}

// IsVisible reports whether key is rendered.
func (v *Visibility) IsVisible(key string) bool {
	_, ok := v.visible[key]
	return ok
}

// Visible returns the rendered keys in column order.
func (v *Visibility) Visible() []string {
	out := make([]string, 0, len(v.visible))
	for _, key := range v.universe {
		if _, ok := v.visible[key]; ok {
			out = append(out, key)
		}
	}
	return out
}

// Hidden returns the togglable keys that are not rendered, in column order.
func (v *Visibility) Hidden() []string {
	out := make([]string, 0)
	for _, key := range v.universe {
		if _, ok := v.visible[key]; !ok {
			out = append(out, key)
		}
	}
	return out
}

func (v *Visibility) inUniverse(key string) bool {
	for _, k := range v.universe {
		if k == key {
			return true
		}
	}
	return false
}
