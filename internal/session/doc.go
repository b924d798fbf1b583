package session

// Package session keeps the in-memory table mapping opaque callback tokens
// to pending format-selection sessions, and resolves (token, index) pairs
// back to a concrete download instruction. State is process-lifetime only.
