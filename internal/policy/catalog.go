package policy

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
)

// Catalog is a file-backed role policy: a JSON object mapping usernames to
// role lists. Identities without an entry fall back to the default role. The
// file is re-read when it changes on disk, so role grants don't need a
// restart.
type Catalog struct {
	path string

	mu    sync.RWMutex
	roles map[string][]string
}

// NewCatalog loads the catalog file and starts watching it for changes.
func NewCatalog(path string) (*Catalog, error) {
	c := &Catalog{path: path}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	if err := watchFile(path, func() {
		if err := c.Reload(); err != nil {
			log.Printf("role catalog reload failed: %v\n", err)
			return
		}
		log.Printf("role catalog reloaded from %s\n", path)
	}); err != nil {
		return nil, fmt.Errorf("couldn't watch role catalog: %v", err)
	}
	return c, nil
}

// Roles implements the role policy against the loaded catalog.
func (c *Catalog) Roles(username string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if roles, ok := c.roles[username]; ok && len(roles) > 0 {
		return roles
	}
	return []string{DefaultRole}
}

// Reload re-reads the catalog file, replacing the in-memory mapping
// atomically. A parse failure leaves the previous mapping in place.
func (c *Catalog) Reload() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("couldn't read role catalog: %v", err)
	}

	roles := make(map[string][]string)
	if err := json.Unmarshal(data, &roles); err != nil {
		return fmt.Errorf("couldn't parse role catalog %s: %v", c.path, err)
	}

	c.mu.Lock()
	c.roles = roles
	c.mu.Unlock()
	return nil
}
