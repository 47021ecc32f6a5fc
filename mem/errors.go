package mem

import "errors"

var (
	// ErrNotReady indicates the allocation table was never bootstrapped:
	// Init found no usable region that could host it.
	ErrNotReady = errors.New("mem: allocation table not initialized")

	// ErrNoSpace indicates no usable firmware region can fit the request
	// given the current allocations.
	ErrNoSpace = errors.New("mem: no usable region fits the request")

	// ErrBadAddr indicates the address is not the base of a live allocation.
	ErrBadAddr = errors.New("mem: address is not a live allocation")

	// ErrBounds indicates an address range falling outside the physical window.
	ErrBounds = errors.New("mem: range outside the physical window")
)
