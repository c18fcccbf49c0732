package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileDocument is the on-disk shape. The user entry stays raw JSON so a
// corrupt user blob cannot poison the token and role entries.
type fileDocument struct {
	Token string          `json:"token,omitempty"`
	User  json.RawMessage `json:"user,omitempty"`
	Role  string          `json:"role,omitempty"`
}

// File is a [Store] persisted as a single JSON document on disk. Writes
// go through a temp file and rename so readers never observe a partially
// written document.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile creates a file-backed store. namespace becomes the document
// name under dir, keeping the session file clear of unrelated data.
func NewFile(dir, namespace string) (*File, error) {
	if namespace == "" {
		namespace = "mentorsphere"
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &File{path: filepath.Join(dir, namespace+".json")}, nil
}

// Path returns the session document location.
func (f *File) Path() string {
	return f.path
}

func (f *File) load() (fileDocument, error) {
	var doc fileDocument

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// A corrupt document reads as an absent session. The next write
	// replaces it wholesale.
	if err := json.Unmarshal(data, &doc); err != nil {
		return fileDocument{}, nil
	}
	return doc, nil
}

func (f *File) save(doc fileDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (f *File) GetToken(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return "", err
	}
	return doc.Token, nil
}

func (f *File) SetToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	doc.Token = token
	return f.save(doc)
}

func (f *File) GetUser(context.Context) (*UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return nil, err
	}
	if len(doc.User) == 0 {
		return nil, nil
	}

	var user UserRecord
	if err := json.Unmarshal(doc.User, &user); err != nil {
		// Defensive parse: malformed user data reads as absent.
		return nil, nil
	}
	return &user, nil
}

func (f *File) SetUser(_ context.Context, user *UserRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}

	if user == nil {
		doc.User = nil
	} else {
		raw, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		doc.User = raw
	}
	return f.save(doc)
}

func (f *File) GetRole(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return "", err
	}
	return doc.Role, nil
}

func (f *File) SetRole(_ context.Context, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	doc.Role = role
	return f.save(doc)
}

// ClearAll removes the whole document in one unlink, so a reader either
// sees the previous session or none at all.
func (f *File) ClearAll(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
