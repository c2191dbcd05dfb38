// Package local is the fallback backend used when no MongoDB configuration
// is available: both collections live in JSON files under a data directory
// and every mutation rewrites the affected file wholesale.
package local

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
)

const (
	menuItemsFile = "menu_items.json"
	ordersFile    = "orders.json"
)

type Storage struct {
	dir string

	mu        sync.Mutex
	menuItems []domain.MenuItem
	orders    []domain.Order
}

func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{dir: dir}

	if err := s.loadFile(menuItemsFile, &s.menuItems); err != nil {
		return nil, err
	}
	if err := s.loadFile(ordersFile, &s.orders); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Storage) loadFile(name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return nil
}

// saveFile serializes the full collection back to disk. Callers must hold mu.
func (s *Storage) saveFile(name string, in interface{}) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	return nil
}

func (s *Storage) saveMenuItems() error {
	return s.saveFile(menuItemsFile, s.menuItems)
}

func (s *Storage) saveOrders() error {
	return s.saveFile(ordersFile, s.orders)
}
