package qlog

import "github.com/pkg/errors"

// ErrAllocationFailure is returned if the storage of a log cannot be obtained.
var ErrAllocationFailure = errors.New("qlog: allocation failure")

// ErrInvalidQubitCount is returned if a log is created for an unsupported
// amount of qubits.
var ErrInvalidQubitCount = errors.New("qlog: invalid qubit count")

// ErrFull is returned if an entry is appended to a log that has reached its
// capacity. It is an expected condition: callers may flush, optimize or
// reject further input.
var ErrFull = errors.New("qlog: log full")

// ErrInvalidEntry is returned if an entry is malformed. The returned error
// wraps this value with the reason.
var ErrInvalidEntry = errors.New("qlog: invalid entry")

// ErrInvalidHandle is returned when operating on a nil or destroyed log.
var ErrInvalidHandle = errors.New("qlog: invalid handle")

// ErrNotFound is returned if an archived log does not exist.
var ErrNotFound = errors.New("qlog: not found")

// ErrNoArchive is returned if a recorder without an archive is flushed.
var ErrNoArchive = errors.New("qlog: no archive")
