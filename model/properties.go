package model

import (
	"encoding/json"
	"sort"
)

// Properties are the typed attributes of a node or edge.
type Properties map[string]Value

// PropertiesOf converts plain decoded data into Properties.
func PropertiesOf(m map[string]any) (Properties, error) {
	p := make(Properties, len(m))
	for k, raw := range m {
		v, err := ValueOf(raw)
		if err != nil {
			return nil, err
		}
		p[k] = v
	}
	return p, nil
}

// MustProperties is PropertiesOf for literals, it panics on unsupported data.
func MustProperties(m map[string]any) Properties {
	p, err := PropertiesOf(m)
	if err != nil {
		panic(err)
	}
	return p
}

// Clone returns a deep copy. A nil receiver yields an empty map.
func (p Properties) Clone() Properties {
	c := make(Properties, len(p))
	for k, v := range p {
		c[k] = v.Clone()
	}
	return c
}

func (p Properties) Equal(o Properties) bool {
	if len(p) != len(o) {
		return false
	}
	for k, v := range p {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Native flattens the properties into plain Go data for rendering.
func (p Properties) Native() map[string]any {
	m := make(map[string]any, len(p))
	for k, v := range p {
		m[k] = v.Native()
	}
	return m
}

// Keys returns the property names in sorted order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p Properties) Marshal() ([]byte, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]Value(p))
}

func (p *Properties) Unmarshal(data []byte) error {
	m := map[string]Value{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*p = Properties(m)
	return nil
}
