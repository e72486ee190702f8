package config

import "errors"

var (
	// ErrNilConfig is returned when Load receives a nil pointer.
	ErrNilConfig = errors.New("config: nil config pointer")

	// ErrParse wraps environment parsing failures.
	ErrParse = errors.New("config: failed to parse environment")

	// ErrDotenv wraps failures reading an existing .env file.
	ErrDotenv = errors.New("config: failed to load .env file")

	// ErrReadFile wraps failures reading a configuration file.
	ErrReadFile = errors.New("config: failed to read file")

	// ErrDecodeFile wraps failures decoding a configuration file.
	ErrDecodeFile = errors.New("config: failed to decode file")
)
