package pathstore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"PriceSentinel/internal/model"
)

// Archive keeps diagnostic sample paths compressed in memory, addressed by
// the SHA-256 of their encoded bytes. It never touches disk.
type Archive struct {
	mu      sync.RWMutex
	objects map[string][]byte
	order   []string
}

func NewArchive() *Archive {
	return &Archive{objects: make(map[string][]byte)}
}

// Put appends path and returns its content hash. An identical path is
// recorded again but its encoded bytes are stored once.
func (a *Archive) Put(path model.SimulatedPath) (string, error) {
	data, err := Encode(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.objects[hash]; !ok {
		a.objects[hash] = data
	}
	a.order = append(a.order, hash)
	return hash, nil
}

// Get decodes the path stored under hash.
func (a *Archive) Get(hash string) (model.SimulatedPath, error) {
	a.mu.RLock()
	data, ok := a.objects[hash]
	a.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no path %s", hash)
	}
	return Decode(data)
}

// All decodes every stored path in insertion order.
func (a *Archive) All() ([]model.SimulatedPath, error) {
	a.mu.RLock()
	hashes := append([]string(nil), a.order...)
	a.mu.RUnlock()

	paths := make([]model.SimulatedPath, 0, len(hashes))
	for _, h := range hashes {
		p, err := a.Get(h)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Len returns the number of paths put, duplicates included.
func (a *Archive) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.order)
}

// Size returns the compressed size of the distinct paths in bytes.
func (a *Archive) Size() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	n := 0
	for _, d := range a.objects {
		n += len(d)
	}
	return n
}
