package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// cache stores parsed configs per concrete type so that packages sharing a
// config struct (pg.Config loaded from both the server and a CLI, say) see
// a single consistent value and env parsing happens once.
var cache = struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}{
	values: make(map[string]any),
	onces:  make(map[string]*sync.Once),
}

// Load populates v from environment variables using caarlos0/env struct tags.
// A .env file in the working directory is loaded once per process if present;
// its absence is not an error. Each config type is parsed exactly once and
// cached, so repeated calls are cheap and return identical values.
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := typeName[T]()

	cache.mu.RLock()
	if cached, ok := cache.values[key]; ok {
		*v = cached.(T)
		cache.mu.RUnlock()
		return nil
	}
	cache.mu.RUnlock()

	cache.mu.Lock()
	once, ok := cache.onces[key]
	if !ok {
		once = new(sync.Once)
		cache.onces[key] = once
	}
	cache.mu.Unlock()

	var parseErr error
	once.Do(func() {
		if err := env.Parse(v); err != nil {
			parseErr = errors.Join(ErrParsingConfig, err)
			return
		}
		cache.mu.Lock()
		cache.values[key] = *v
		cache.mu.Unlock()
	})
	if parseErr != nil {
		return parseErr
	}

	cache.mu.RLock()
	defer cache.mu.RUnlock()
	if cached, ok := cache.values[key]; ok {
		*v = cached.(T)
		return nil
	}
	// The once ran in a concurrent caller and failed there.
	return ErrConfigNotLoaded
}

// MustLoad is Load that panics on failure. Use for configuration the process
// cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: failed to load required configuration: %v", err))
	}
}

func typeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
