package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrStopped       = errors.New("service stopped")
	ErrBackpressure  = errors.New("command queue full")
	ErrNoGame        = errors.New("no published game state")
	ErrUnknownPreset = errors.New("unknown roster preset")
)
