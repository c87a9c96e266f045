package eventengine

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Entry is a single key/value pair of an EventData.
type Entry struct {
	Key   string
	Value any
}

// EventData is the mutable, ordered key/value payload of an Event.
//
// Keys are unique and iterate in insertion order; overwriting a key keeps
// its original position. Handlers share one EventData per event, so a Set
// is visible to every later handler and to the producer.
//
// EventData is not safe for concurrent use.
type EventData struct {
	keys   []string
	values map[string]any
}

// NewEventData returns an empty payload.
func NewEventData() *EventData {
	return &EventData{
		values: make(map[string]any),
	}
}

// EventDataFromMap returns a payload holding a copy of m.
// Go maps are unordered, so keys are inserted in sorted order.
func EventDataFromMap(m map[string]any) *EventData {
	d := NewEventData()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		d.Set(k, m[k])
	}
	return d
}

// With sets key to value and returns d for chaining.
//
//	data := eventengine.NewEventData().
//	    With("condition", true).
//	    With("records", records)
func (d *EventData) With(key string, value any) *EventData {
	d.Set(key, value)
	return d
}

// Get returns the value stored at key. ok is false when the key is absent.
func (d *EventData) Get(key string) (value any, ok bool) {
	value, ok = d.values[key]
	return value, ok
}

// Has reports whether key is present.
func (d *EventData) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Set inserts or overwrites key.
func (d *EventData) Set(key string, value any) {
	if d.values == nil {
		d.values = make(map[string]any)
	}
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Remove deletes key. Removing an absent key is a no-op.
func (d *EventData) Remove(key string) {
	if _, exists := d.values[key]; !exists {
		return
	}
	delete(d.values, key)
	d.keys = slices.DeleteFunc(d.keys, func(k string) bool { return k == key })
}

// Len returns the number of keys.
func (d *EventData) Len() int {
	return len(d.keys)
}

// Keys returns the keys in insertion order.
func (d *EventData) Keys() []string {
	return slices.Clone(d.keys)
}

// All returns an iterator over the pairs in insertion order.
// Each call starts a fresh pass.
func (d *EventData) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range d.keys {
			if !yield(k, d.values[k]) {
				return
			}
		}
	}
}

// Entries returns an ordered snapshot of the pairs.
func (d *EventData) Entries() []Entry {
	entries := make([]Entry, 0, len(d.keys))
	for k, v := range d.All() {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	return entries
}

// ToMap returns a copy of the pairs. Mutating the map does not affect d.
func (d *EventData) ToMap() map[string]any {
	m := make(map[string]any, len(d.keys))
	for k, v := range d.All() {
		m[k] = v
	}
	return m
}

// Clone returns an independent payload with the same pairs in the same order.
// Values are copied shallowly.
func (d *EventData) Clone() *EventData {
	c := &EventData{
		keys:   slices.Clone(d.keys),
		values: make(map[string]any, len(d.values)),
	}
	maps.Copy(c.values, d.values)
	return c
}

// Value returns the value at key asserted to T. ok is false when the key is
// absent or holds a value of another type.
func Value[T any](d *EventData, key string) (value T, ok bool) {
	raw, exists := d.Get(key)
	if !exists {
		return value, false
	}
	value, ok = raw.(T)
	return value, ok
}

// MarshalJSON encodes the payload as a JSON object in insertion order.
func (d *EventData) MarshalJSON() ([]byte, error) {
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, k := range d.keys {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(k)
		stream.WriteVal(d.values[k])
	}
	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, fmt.Errorf("marshal event data: %w", stream.Error)
	}
	return slices.Clone(stream.Buffer()), nil
}

// UnmarshalJSON replaces the payload with the object in data, keeping the
// document's key order.
func (d *EventData) UnmarshalJSON(data []byte) error {
	it := jsonAPI.BorrowIterator(data)
	defer jsonAPI.ReturnIterator(it)

	decoded := NewEventData()
	it.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		decoded.Set(key, it.Read())
		return it.Error == nil
	})
	if it.Error != nil {
		return fmt.Errorf("unmarshal event data: %w", it.Error)
	}

	d.keys = decoded.keys
	d.values = decoded.values
	return nil
}
