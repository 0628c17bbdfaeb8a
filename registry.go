package alfa

import (
	"reflect"
	"sync"
)

type registryKey struct {
	typ         reflect.Type
	contentType string
}

var (
	registry   = make(map[registryKey]any)
	registryMu sync.RWMutex
)

// Use returns a cached processor for T and the codec's content type,
// building one on first use. Encryptors registered on the returned
// processor are shared by every caller.
func Use[T Cloner[T]](codec Codec) (*Processor[T], error) {
	key := registryKey{typ: reflect.TypeFor[T](), contentType: codec.ContentType()}

	registryMu.RLock()
	if cached, ok := registry[key]; ok {
		registryMu.RUnlock()
		return cached.(*Processor[T]), nil
	}
	registryMu.RUnlock()

	registryMu.Lock()
	defer registryMu.Unlock()

	if cached, ok := registry[key]; ok {
		return cached.(*Processor[T]), nil
	}

	processor, err := NewProcessor[T](codec)
	if err != nil {
		return nil, err
	}
	registry[key] = processor
	return processor, nil
}

// Reset clears the processor registry.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[registryKey]any)
}
