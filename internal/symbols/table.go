// Package symbols provides the symbol table for labels and constants.
package symbols

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// MaxSymbols is the maximum number of symbols a program can define.
const MaxSymbols = 255

// Symbol is a named 16 bit value.
type Symbol struct {
	Name  string
	Value uint16
}

// Hex returns the canonical uppercase hexadecimal form of the value.
func (s Symbol) Hex() string {
	return strings.ToUpper(strconv.FormatUint(uint64(s.Value), 16))
}

// Table maps symbol names to values. The first definition of a name wins.
type Table struct {
	items map[string]Symbol
	order []string // names in definition order
}

// New creates a new symbol table.
func New() *Table {
	return &Table{
		items: make(map[string]Symbol),
	}
}

// Define adds a symbol. It returns false if the name is already defined,
// in which case the existing value is kept.
func (t *Table) Define(name string, value uint16) bool {
	if t.Has(name) {
		return false
	}
	t.items[name] = Symbol{Name: name, Value: value}
	t.order = append(t.order, name)
	return true
}

// Get returns the symbol with the given name.
func (t *Table) Get(name string) (Symbol, bool) {
	sym, ok := t.items[name]
	return sym, ok
}

// Has returns whether a symbol with the given name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.items[name]
	return ok
}

// Len returns the number of symbols in the table.
func (t *Table) Len() int {
	return len(t.items)
}

// Exceeded returns whether the table holds more than MaxSymbols symbols.
func (t *Table) Exceeded() bool {
	return t.Len() > MaxSymbols
}

// Symbols returns all symbols in definition order.
func (t *Table) Symbols() []Symbol {
	items := make([]Symbol, 0, len(t.order))
	for _, name := range t.order {
		items = append(items, t.items[name])
	}
	return items
}

// ByLength returns all symbols sorted by descending name length, so that a
// name that is a substring of a longer name is matched after the longer one.
// Names of equal length keep their definition order.
func (t *Table) ByLength() []Symbol {
	items := t.Symbols()
	slices.SortStableFunc(items, func(a, b Symbol) int {
		return cmp.Compare(len(b.Name), len(a.Name))
	})
	return items
}

// LongestMatch returns the symbol with the longest name that is contained
// in the given text. Of equally long names the first defined one wins.
func (t *Table) LongestMatch(text string) (Symbol, bool) {
	var match Symbol
	var found bool
	for _, name := range t.order {
		if len(name) > len(match.Name) && strings.Contains(text, name) {
			match = t.items[name]
			found = true
		}
	}
	return match, found
}

// SortedByName returns all symbols sorted alphabetically by name.
func (t *Table) SortedByName() []Symbol {
	items := t.Symbols()
	slices.SortFunc(items, func(a, b Symbol) int {
		return strings.Compare(a.Name, b.Name)
	})
	return items
}

// SortedByValue returns all symbols sorted numerically by value.
// Symbols of equal value keep their definition order.
func (t *Table) SortedByValue() []Symbol {
	items := t.Symbols()
	slices.SortStableFunc(items, func(a, b Symbol) int {
		return cmp.Compare(a.Value, b.Value)
	})
	return items
}
