package repository

import (
	"os"
	"sync"
)

// Handle is the exclusive owner of one scratch working copy bound to a target.
type Handle struct {
	target  Target
	root    string
	created bool

	mu sync.Mutex
}

func newHandle(target Target, root string, created bool) *Handle {
	return &Handle{
		target:  target,
		root:    root,
		created: created,
	}
}

func (h *Handle) Target() Target { return h.target }

// Root returns the absolute path of the working copy.
func (h *Handle) Root() string { return h.root }

func (h *Handle) Branch() string { return h.target.Branch() }

// Created reports whether the branch did not exist remotely and was created locally.
func (h *Handle) Created() bool { return h.created }

// lock serializes mutating transactions on the working copy.
func (h *Handle) lock() func() {
	h.mu.Lock()
	return h.mu.Unlock
}

// Close removes the working copy directory.
func (h *Handle) Close() error {
	unlock := h.lock()
	defer unlock()

	return os.RemoveAll(h.root)
}
