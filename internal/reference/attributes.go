package reference

// Attributes maps column names to values and remembers the order in which
// keys were first set. The zero value is an empty, usable set.
type Attributes struct {
	keys   []string
	values map[string]Value
}

// Set stores v under key. Overwriting keeps the key's original position.
func (a *Attributes) Set(key string, v Value) {
	if a.values == nil {
		a.values = make(map[string]Value)
	}
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = v
}

// Get returns the value stored under key.
func (a Attributes) Get(key string) (Value, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Has reports whether key is set.
func (a Attributes) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Delete removes key.
func (a *Attributes) Delete(key string) {
	if _, ok := a.values[key]; !ok {
		return
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i:i], a.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (a Attributes) Keys() []string {
	keys := make([]string, len(a.keys))
	copy(keys, a.keys)
	return keys
}

// Len returns the number of keys.
func (a Attributes) Len() int { return len(a.keys) }

// Clone returns an independent copy of a.
func (a Attributes) Clone() Attributes {
	c := Attributes{
		keys:   make([]string, len(a.keys)),
		values: make(map[string]Value, len(a.values)),
	}
	copy(c.keys, a.keys)
	for k, v := range a.values {
		c.values[k] = v
	}
	return c
}
