package idgen

import (
	oklog "github.com/oklog/ulid/v2"

	"github.com/aatuh/ulid-toolkit/ulid"
)

// ToOklog converts to github.com/oklog/ulid/v2 for code that already
// speaks that type. Both use the same 16-byte layout.
func ToOklog(id ulid.ULID) oklog.ULID {
	return oklog.ULID(id)
}

// FromOklog is the inverse of ToOklog.
func FromOklog(id oklog.ULID) ulid.ULID {
	return ulid.ULID(id)
}
