// Package config holds the tunable constants of a fronthaul analysis run and
// loads them from YAML.
//
// Default() reproduces the reference numerology (500 µs slots of 14 symbols,
// a 4-symbol buffer, a 1 % per-cell loss bound, 24 cells on 3 shared links).
// Load overlays a YAML file on those defaults; keys the file omits keep their
// default value and unknown keys are rejected.
//
//	cfg, err := config.Load("fronthaul.yaml")
//	if err != nil { ... }
//	topoOpts, err := cfg.TopologyOptions()
package config
