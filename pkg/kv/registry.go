package kv

import (
	"slices"
	"sync"

	"github.com/pkg/errors"
)

var ErrNotRegistered = errors.New("not registered")

type Type string

type CreateProviderFunc func(options any) (Provider, error)

var (
	registryMutex sync.RWMutex
	registry      = map[Type]CreateProviderFunc{}
)

func Register(typ Type, fn CreateProviderFunc) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	registry[typ] = fn
}

func Registered() []Type {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	types := make([]Type, 0, len(registry))
	for typ := range registry {
		types = append(types, typ)
	}

	slices.Sort(types)

	return types
}

func New(typ Type, options any) (Provider, error) {
	registryMutex.RLock()
	create, exists := registry[typ]
	registryMutex.RUnlock()

	if !exists {
		return nil, errors.Wrapf(ErrNotRegistered, "no store provider registered for type '%s'", typ)
	}

	provider, err := create(options)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return provider, nil
}
