package ulid

import "github.com/google/uuid"

// UUID reinterprets the 128 bits as a UUID. Version and variant bits are
// whatever the ULID holds.
func (id ULID) UUID() uuid.UUID {
	return uuid.UUID(id)
}

// FromUUID reinterprets a UUID as a ULID. Version and variant bits are not
// inspected, so any UUID round-trips exactly.
func FromUUID(u uuid.UUID) ULID {
	return ULID(u)
}

// ParseUUID parses the textual forms accepted by uuid.Parse and
// reinterprets the result.
func ParseUUID(s string) (ULID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Zero, &InvalidUUIDError{Input: s, Err: err}
	}
	return FromUUID(u), nil
}
