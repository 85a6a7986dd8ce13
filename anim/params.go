// Package anim stores the animation parameters a pedestrian publishes.
// Parameters are keyed by the hash of their name and kept in first-set
// order so views list them stably.
package anim

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/zeebo/xxh3"
)

// ID is the hashed name of a parameter.
type ID uint64

// StringToHash returns the ID of a parameter name.
func StringToHash(name string) ID {
	return ID(xxh3.HashString(name))
}

// Value is one parameter.
type Value struct {
	Name   string
	Float  float64
	Bool   bool
	IsBool bool
}

func (v Value) String() string {
	if v.IsBool {
		return fmt.Sprintf("%s=%t", v.Name, v.Bool)
	}
	return fmt.Sprintf("%s=%.3f", v.Name, v.Float)
}

// Params is an AnimationSink backed by an ordered map.
type Params struct {
	values *orderedmap.OrderedMap[ID, Value]
}

func NewParams() *Params {
	return &Params{values: orderedmap.NewOrderedMap[ID, Value]()}
}

func (p *Params) SetFloat(name string, v float64) {
	p.values.Set(StringToHash(name), Value{Name: name, Float: v})
}

func (p *Params) SetBool(name string, v bool) {
	p.values.Set(StringToHash(name), Value{Name: name, Bool: v, IsBool: true})
}

// Float returns a float parameter by name.
func (p *Params) Float(name string) (float64, bool) {
	v, ok := p.values.Get(StringToHash(name))
	if !ok || v.IsBool {
		return 0, false
	}
	return v.Float, true
}

// Bool returns a bool parameter by name.
func (p *Params) Bool(name string) (bool, bool) {
	v, ok := p.values.Get(StringToHash(name))
	if !ok || !v.IsBool {
		return false, false
	}
	return v.Bool, true
}

// Get returns a parameter by ID.
func (p *Params) Get(id ID) (Value, bool) {
	return p.values.Get(id)
}

func (p *Params) Len() int {
	return p.values.Len()
}

// Values returns all parameters in first-set order.
func (p *Params) Values() []Value {
	out := make([]Value, 0, p.values.Len())
	for _, id := range p.values.Keys() {
		v, _ := p.values.Get(id)
		out = append(out, v)
	}
	return out
}

func (p *Params) String() string {
	parts := make([]string, 0, p.values.Len())
	for _, v := range p.Values() {
		parts = append(parts, v.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}
