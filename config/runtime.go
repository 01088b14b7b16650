package config

import "sync/atomic"

var global atomic.Pointer[Config]

// SetGlobal installs cfg as the process-wide record. Only the first call
// has an effect; the result reports whether cfg was installed.
func SetGlobal(cfg *Config) bool {
	return global.CompareAndSwap(nil, cfg)
}

func Global() *Config {
	cfg := global.Load()
	if cfg == nil {
		panic("config not initialized")
	}
	return cfg
}
