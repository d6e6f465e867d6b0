package models

import (
	"fmt"
	"sort"
	"sync"
)

// FoodCatalog handles thread-safe access to the known foods. The catalog file
// can be reloaded by a watcher goroutine while commands read from it.
type FoodCatalog struct {
	mu    sync.RWMutex
	foods map[int]Food
}

// NewFoodCatalog returns a catalog holding foods.
func NewFoodCatalog(foods []Food) *FoodCatalog {
	c := &FoodCatalog{}
	c.Update(foods)
	return c
}

// Update replaces the catalog content. Later duplicates of an id win.
func (c *FoodCatalog) Update(foods []Food) {
	byID := make(map[int]Food, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.foods = byID
}

// Resolve returns the food with the given id.
func (c *FoodCatalog) Resolve(id int) (Food, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, ok := c.foods[id]
	if !ok {
		return Food{}, fmt.Errorf("food %d: %w", id, ErrFoodNotFound)
	}
	return f, nil
}

// All returns every food ordered by id.
func (c *FoodCatalog) All() []Food {
	c.mu.RLock()
	foods := make([]Food, 0, len(c.foods))
	for _, f := range c.foods {
		foods = append(foods, f)
	}
	c.mu.RUnlock()

	sort.Slice(foods, func(i, j int) bool { return foods[i].ID < foods[j].ID })
	return foods
}

// Len returns the number of foods in the catalog.
func (c *FoodCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.foods)
}
