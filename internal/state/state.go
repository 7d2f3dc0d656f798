// Package state remembers the page each book was left open at.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

const (
	stateFileName = "reading_positions.json"
	hashBytes     = 8192 // First 8KB for content hash
)

// Position is the saved place in one book.
type Position struct {
	PageIndex int `json:"page_index"`
}

// Store keeps positions keyed by content hash in a JSON file.
type Store struct {
	path string
	data map[string]Position
	mu   sync.RWMutex
}

// Open creates dir if needed and loads the positions saved there. A
// corrupt file is ignored and overwritten on the next save.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	store := &Store{
		path: filepath.Join(dir, stateFileName),
		data: make(map[string]Position),
	}
	if err := store.load(); err != nil {
		store.data = make(map[string]Position)
	}
	return store, nil
}

// DefaultDir returns XDG_STATE_HOME/prr or ~/.local/state/prr
func DefaultDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "prr")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "prr")
}

// ComputeHash identifies a book file by the hash of its first 8KB.
func ComputeHash(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, hashBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}

	sum := sha256.Sum256(buf[:n])
	return hex.EncodeToString(sum[:16]), nil
}

// Key names the saved position of a book paginated at linesPerPage. Page
// numbers only mean the same text at the same page height.
func Key(hash string, linesPerPage int) string {
	return fmt.Sprintf("%s:%d", hash, linesPerPage)
}

// PageIndex returns the saved page for hash, or 0.
func (s *Store) PageIndex(hash string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[hash].PageIndex
}

// SetPageIndex saves the page for hash and writes the file.
func (s *Store) SetPageIndex(hash string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[hash] = Position{PageIndex: index}
	return s.save()
}

// Clear forgets hash and writes the file.
func (s *Store) Clear(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, hash)
	return s.save()
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &s.data)
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
