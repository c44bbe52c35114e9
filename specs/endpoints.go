package specs

// System endpoints.
const (
	Livez   = "/livez"
	Readyz  = "/readyz"
	Metrics = "/metrics"
)

// ULID endpoints. {value} is a 26-character ULID.
const (
	ULIDs             = "/v1/ulids"
	ULID              = "/v1/ulids/{value}"
	ULIDNext          = "/v1/ulids/{value}/next"
	ULIDFromBytes     = "/v1/ulids/from-bytes"
	ULIDFromUUID      = "/v1/ulids/from-uuid"
	ULIDFromTimestamp = "/v1/ulids/from-timestamp"
	ULIDFromDatetime  = "/v1/ulids/from-datetime"
	ULIDFromParts     = "/v1/ulids/from-parts"
	ValueParam        = "value"
	CountQueryParam   = "count"
)
