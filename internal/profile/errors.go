package profile

import (
	"errors"

	"github.com/HendryAvila/focusmate/internal/docstore"
)

var (
	// ErrNotFound is returned by Lookup when the user has no document.
	// Every other operation absorbs it.
	ErrNotFound = errors.New("profile not found")
	// ErrUnavailable is the store failure every operation propagates.
	ErrUnavailable = docstore.ErrUnavailable
	// ErrInvalidCategory rejects a habit category outside the fixed set.
	ErrInvalidCategory = errors.New("category must be 'procrastination_habits' or 'known_blockers'")
	// ErrInvalidSection rejects a section name outside the schema.
	ErrInvalidSection = errors.New("unknown profile section")
	// ErrReadOnlySection rejects direct writes to engine-owned sections.
	ErrReadOnlySection = errors.New("section is managed by the engine")
	// ErrInvalidPayload rejects update data that does not fit the section.
	ErrInvalidPayload = errors.New("invalid section data")
	// ErrCorruptDocument means the stored bytes are not a profile.
	ErrCorruptDocument = errors.New("stored profile is not valid JSON")
)
