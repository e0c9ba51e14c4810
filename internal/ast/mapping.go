package ast

import "strconv"

// Pair is a (key, value) entry of a Mapping. Either side may be nil: an
// explicit key with no value (`? key`), or an entirely empty pair
// produced by a bare `?` with neither key nor value supplied.
type Pair struct {
	Props Common

	Explicit bool // introduced with '?'
	Key      Node
	Value    Node
}

func (p *Pair) Kind() Kind      { return KindPair }
func (p *Pair) Common() *Common { return &p.Props }

// Mapping is an ordered sequence of Pair entries. Duplicate keys are
// permitted; neither the tree nor the composer rejects them.
type Mapping struct {
	Props Common

	Items []*Pair
	Flow  bool
}

func (m *Mapping) Kind() Kind      { return KindMapping }
func (m *Mapping) Common() *Common { return &m.Props }

// Add appends a new pair built from key and value, wrapping each with
// CreateNode if it is not already a Node.
func (m *Mapping) Add(key, value any) {
	m.Items = append(m.Items, &Pair{Key: CreateNode(key), Value: CreateNode(value)})
}

// Has reports whether a pair with the given (already-resolved) scalar
// key exists.
func (m *Mapping) Has(key any) bool {
	_, ok := m.find(key)
	return ok
}

// Get returns the value for key, unwrapping a Scalar's native value
// unless keepScalar is true (in which case the Node itself is
// returned). The second result reports whether key was found.
func (m *Mapping) Get(key any, keepScalar bool) (any, bool) {
	pair, ok := m.find(key)
	if !ok {
		return nil, false
	}
	if keepScalar {
		return pair.Value, true
	}
	if s, ok := pair.Value.(*Scalar); ok {
		return s.Value, true
	}
	return pair.Value, true
}

// Set replaces the value of the pair matching key, or appends a new
// pair if none matches.
func (m *Mapping) Set(key, value any) {
	if pair, ok := m.find(key); ok {
		pair.Value = CreateNode(value)
		return
	}
	m.Add(key, value)
}

// Delete removes the pair matching key, reporting whether one was
// found and removed.
func (m *Mapping) Delete(key any) bool {
	for i, pair := range m.Items {
		if pairKeyEquals(pair, key) {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Mapping) find(key any) (*Pair, bool) {
	for _, pair := range m.Items {
		if pairKeyEquals(pair, key) {
			return pair, true
		}
	}
	return nil, false
}

func pairKeyEquals(pair *Pair, key any) bool {
	s, ok := pair.Key.(*Scalar)
	if !ok {
		return false
	}
	switch k := key.(type) {
	case string:
		sv, ok := s.Value.(string)
		return ok && sv == k
	default:
		return s.Value == key
	}
}

// parseSeqIndex parses key (an int or a decimal string) as a
// non-negative sequence index for the Sequence accessors.
func parseSeqIndex(key any) (int, bool) {
	switch k := key.(type) {
	case int:
		return k, k >= 0
	case string:
		n, err := strconv.Atoi(k)
		return n, err == nil && n >= 0
	default:
		return 0, false
	}
}
