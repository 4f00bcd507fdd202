// Copyright (c) 2026 DSMovie. All rights reserved.

// Package uuidv7 generates time-sortable UUID v7 identifiers.
//
// # Why v7?
//
// UUID v7 embeds a millisecond timestamp in the leading bits, so primary keys
// generated by the application stay roughly append-ordered in B-tree indexes.
package uuidv7

import "github.com/google/uuid"

// New returns a UUID v7 string, falling back to v4 if the system clock
// source is unavailable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
