package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoRecord is returned by Load when nothing is persisted.
var ErrNoRecord = errors.New("no persisted session")

// Persister stores the encoded session under Key.
type Persister interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// FilePersister keeps the session in <dir>/vault_user.json, readable only by the owner.
type FilePersister struct {
	dir string
}

func NewFilePersister(dir string) *FilePersister {
	return &FilePersister{dir: dir}
}

func (p *FilePersister) Path() string {
	return filepath.Join(p.dir, Key+".json")
}

func (p *FilePersister) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(p.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoRecord
	}
	return data, err
}

func (p *FilePersister) Save(_ context.Context, data []byte) error {
	if err := os.MkdirAll(p.dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(p.dir, Key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p.Path())
}

func (p *FilePersister) Clear(_ context.Context) error {
	err := os.Remove(p.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// RedisPersister shares the session through Redis. A zero ttl keeps the entry until logout.
type RedisPersister struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisPersister(rdb redis.Cmdable, ttl time.Duration) *RedisPersister {
	return &RedisPersister{rdb: rdb, ttl: ttl}
}

func (p *RedisPersister) Load(ctx context.Context) ([]byte, error) {
	data, err := p.rdb.Get(ctx, Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoRecord
	}
	return data, err
}

func (p *RedisPersister) Save(ctx context.Context, data []byte) error {
	return p.rdb.Set(ctx, Key, data, p.ttl).Err()
}

func (p *RedisPersister) Clear(ctx context.Context) error {
	return p.rdb.Del(ctx, Key).Err()
}

// MemoryPersister keeps the session for the lifetime of the process.
type MemoryPersister struct {
	mu   sync.Mutex
	data []byte
}

func (p *MemoryPersister) Load(_ context.Context) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data == nil {
		return nil, ErrNoRecord
	}
	return append([]byte(nil), p.data...), nil
}

func (p *MemoryPersister) Save(_ context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data = append([]byte(nil), data...)
	return nil
}

func (p *MemoryPersister) Clear(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data = nil
	return nil
}
