package server

import "net/http"

const DefaultPrefix = "/continents/"

type Config struct {
	// Prefix is the path both operations live under, with a trailing slash.
	Prefix string

	// NotFoundStatus answers a retrieve for a missing key. Existing
	// clients expect 500; 404 is opt-in.
	NotFoundStatus int

	// MalformedStatus answers a create-or-replace whose body is not a
	// usable record, an empty name included. Defaults to 500, the status
	// existing clients see for an unhandled decode failure; 400 is opt-in.
	MalformedStatus int

	// MaxBodyBytes caps create-or-replace bodies; 0 reads them whole.
	MaxBodyBytes int64
}

func DefaultConfig() Config {
	return Config{
		Prefix:          DefaultPrefix,
		NotFoundStatus:  http.StatusInternalServerError,
		MalformedStatus: http.StatusInternalServerError,
	}
}

func (cfg Config) withDefaults() Config {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	if cfg.Prefix[len(cfg.Prefix)-1] != '/' {
		cfg.Prefix += "/"
	}
	if cfg.NotFoundStatus == 0 {
		cfg.NotFoundStatus = http.StatusInternalServerError
	}
	if cfg.MalformedStatus == 0 {
		cfg.MalformedStatus = http.StatusInternalServerError
	}
	return cfg
}
