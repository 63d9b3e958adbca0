// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package platform

import (
	"fmt"
	"sort"
	"sync"

	"github.com/platinasystems/scd/internal/hal"
)

// Builder constructs a platform's complete tree.
type Builder func(env hal.Env) *Platform

// Identifier reads the SKU of the running system.
type Identifier interface {
	Sku() (string, error)
}

type Registry struct {
	mu       sync.Mutex
	builders map[string]Builder
}

func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register b for each of skus; a later registration of the same SKU
// replaces the former.
func (r *Registry) Register(b Builder, skus ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sku := range skus {
		r.builders[sku] = b
	}
}

func (r *Registry) Lookup(sku string) (Builder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, found := r.builders[sku]; found {
		return b, nil
	}
	return nil, fmt.Errorf("platform %q: %w", sku, ErrNotFound)
}

func (r *Registry) Skus() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	skus := make([]string, 0, len(r.builders))
	for sku := range r.builders {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	return skus
}

// Detect looks up the builder of the running system's SKU.
func (r *Registry) Detect(id Identifier) (string, Builder, error) {
	sku, err := id.Sku()
	if err != nil {
		return "", nil, err
	}
	b, err := r.Lookup(sku)
	return sku, b, err
}
