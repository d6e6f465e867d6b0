package config

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

var errReadBytesNotSupported = errors.New("config: map provider does not support ReadBytes")

// mapProvider feeds a flat map of dotted keys to koanf.
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, errReadBytesNotSupported
}

func (m mapProvider) Read() (map[string]any, error) {
	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return maps.Unflatten(cp, "."), nil
}
