package value

// Entry is a single key/value pair within an [Object], preserved in
// insertion order.
type Entry struct {
	Key   Value
	Value Value
}

// Object is an insertion-ordered mapping from Value to Value. Keys are
// unique under [Equal] (spec's "schemaEqual"): numerically equal decimals
// of different scale collide as the same key, matching the last Set.
//
// The zero value is not usable; construct with [NewObject].
type Object struct {
	entries []Entry
	// index accelerates lookup for the common case of scalar (string,
	// number, bool, null, bytes) keys via their canonical form. Complex
	// keys (array, object, tagged) fall back to a linear scan, which is
	// rare in practice for JSON object keys.
	index map[string]int
}

// NewObject returns an empty [Object].
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// NewObjectFromPairs builds an [Object] from string-keyed pairs in order,
// for convenience when building JSON-shaped objects.
func NewObjectFromPairs(pairs ...Entry) *Object {
	o := NewObject()
	for _, p := range pairs {
		o.Set(p.Key, p.Value)
	}

	return o
}

// Len returns the number of entries.
func (o *Object) Len() int { return len(o.entries) }

// Entries returns the entries in insertion order. The returned slice must
// not be mutated by callers.
func (o *Object) Entries() []Entry { return o.entries }

// Get returns the value for key and whether it was present.
func (o *Object) Get(key Value) (Value, bool) {
	if idx, ok := o.lookup(key); ok {
		return o.entries[idx].Value, true
	}

	return Value{}, false
}

// GetString is a convenience accessor for the common case of a string key.
func (o *Object) GetString(key string) (Value, bool) {
	return o.Get(String(key))
}

// Set inserts or updates key's value. Updating an existing key preserves
// its original position.
func (o *Object) Set(key, val Value) {
	if idx, ok := o.lookup(key); ok {
		o.entries[idx].Value = val

		return
	}

	o.entries = append(o.entries, Entry{Key: key, Value: val})

	if ck, ok := canonicalKey(key); ok {
		o.index[ck] = len(o.entries) - 1
	}
}

// SetString is a convenience mutator for the common case of a string key.
func (o *Object) SetString(key string, val Value) {
	o.Set(String(key), val)
}

// Delete removes key if present, preserving the order of remaining
// entries.
func (o *Object) Delete(key Value) {
	idx, ok := o.lookup(key)
	if !ok {
		return
	}

	o.entries = append(o.entries[:idx], o.entries[idx+1:]...)
	o.index = make(map[string]int, len(o.entries))

	for i, e := range o.entries {
		if ck, ok := canonicalKey(e.Key); ok {
			o.index[ck] = i
		}
	}
}

func (o *Object) lookup(key Value) (int, bool) {
	if ck, ok := canonicalKey(key); ok {
		idx, found := o.index[ck]

		return idx, found
	}

	for i, e := range o.entries {
		if Equal(e.Key, key) {
			return i, true
		}
	}

	return 0, false
}

// canonicalKey returns a string form stable under schemaEqual for the
// scalar key kinds, and ok=false for array/object/tagged keys and NaN
// numbers, which use the linear-scan fallback in lookup (where a NaN key
// never matches, since NaN is not [Equal] to itself).
func canonicalKey(v Value) (string, bool) {
	switch v.kind {
	case KindNull:
		return "n", true
	case KindBool:
		if v.b {
			return "b:1", true
		}

		return "b:0", true
	case KindNumber:
		if v.num.IsNaN() {
			return "", false
		}

		return "#:" + v.num.Normalized().String(), true
	case KindString:
		return "s:" + v.str, true
	case KindBytes:
		return "y:" + string(v.bytes), true
	default:
		return "", false
	}
}
