//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package report

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownQuery is returned when a query name is not in the catalog.
var ErrUnknownQuery = errors.New("unknown query")

var (
	registry = make(map[string]Definition)
	order    []string
	mu       sync.RWMutex
)

// Register adds a query to the catalog. Queries are listed in the order
// they were registered; registering a name again replaces it in place.
func Register(def Definition) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := registry[def.Name]; !ok {
		order = append(order, def.Name)
	}
	registry[def.Name] = def
}

// Get retrieves a query by name.
func Get(name string) (Definition, error) {
	mu.RLock()
	defer mu.RUnlock()

	def, ok := registry[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownQuery, name)
	}
	return def, nil
}

// List returns all registered query names in catalog order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, len(order))
	copy(names, order)
	return names
}

// All returns all registered queries in catalog order.
func All() []Definition {
	mu.RLock()
	defer mu.RUnlock()

	defs := make([]Definition, 0, len(order))
	for _, name := range order {
		defs = append(defs, registry[name])
	}
	return defs
}

// Select returns the named queries in catalog order, or the whole catalog
// when names is empty.
func Select(names []string) ([]Definition, error) {
	if len(names) == 0 {
		return All(), nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if _, err := Get(name); err != nil {
			return nil, err
		}
		wanted[name] = true
	}

	var defs []Definition
	for _, def := range All() {
		if wanted[def.Name] {
			defs = append(defs, def)
		}
	}
	return defs, nil
}
