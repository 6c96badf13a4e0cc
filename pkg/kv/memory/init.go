package memory

import (
	"github.com/bornholm/masthead/pkg/kv"
)

const Type kv.Type = "memory"

func init() {
	kv.Register(Type, CreateProviderFromOptions)
}

func CreateProviderFromOptions(options any) (kv.Provider, error) {
	return NewProvider(), nil
}
