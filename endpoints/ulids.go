package endpoints

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"lukechampine.com/uint128"

	"github.com/aatuh/ulid-toolkit/chi"
	"github.com/aatuh/ulid-toolkit/httpx"
	"github.com/aatuh/ulid-toolkit/idgen"
	"github.com/aatuh/ulid-toolkit/logzap"
	"github.com/aatuh/ulid-toolkit/middleware/metrics"
	"github.com/aatuh/ulid-toolkit/ports"
	"github.com/aatuh/ulid-toolkit/specs"
	"github.com/aatuh/ulid-toolkit/ulid"
	"github.com/aatuh/ulid-toolkit/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 4 << 10

// Options configures Handler.
type Options struct {
	Generator ports.IDGen
	Source    ulid.RandomSource
	Validator ports.Validator
	Metrics   metrics.MetricsRecorder
	Log       ports.Logger
	MaxBatch  int
}

// Handler serves the ULID endpoints.
type Handler struct {
	gen      ports.IDGen
	source   ulid.RandomSource
	validate ports.Validator
	metrics  metrics.MetricsRecorder
	log      ports.Logger
	maxBatch int
	params   *chi.URLParamExtractor
}

// NewHandler creates a Handler. Metrics and Log default to no-ops and
// MaxBatch to 1000.
func NewHandler(opts Options) *Handler {
	h := &Handler{
		gen:      opts.Generator,
		source:   opts.Source,
		validate: opts.Validator,
		metrics:  opts.Metrics,
		log:      opts.Log,
		maxBatch: opts.MaxBatch,
		params:   chi.NewURLParamExtractor(),
	}
	if h.validate == nil {
		h.validate = validation.New()
	}
	if h.metrics == nil {
		h.metrics = metrics.NoopMetrics{}
	}
	if h.log == nil {
		h.log = logzap.NewNop()
	}
	if h.maxBatch <= 0 {
		h.maxBatch = 1000
	}
	return h
}

// RegisterRoutes registers the ULID endpoints on the given router.
func (h *Handler) RegisterRoutes(r ports.HTTPRouter) {
	r.Post(specs.ULIDs, h.Generate)
	r.Post(specs.ULIDFromBytes, h.FromBytes)
	r.Post(specs.ULIDFromUUID, h.FromUUID)
	r.Post(specs.ULIDFromTimestamp, h.FromTimestamp)
	r.Post(specs.ULIDFromDatetime, h.FromDatetime)
	r.Post(specs.ULIDFromParts, h.FromParts)
	r.Get(specs.ULID, h.Describe)
	r.Get(specs.ULIDNext, h.Next)
}

// Generate issues ?count= new ULIDs (default 1).
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	count := 1
	if raw := r.URL.Query().Get(specs.CountQueryParam); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > h.maxBatch {
			httpx.WriteError(w, validation.ValidationError{
				Field:   specs.CountQueryParam,
				Message: "must be an integer in 1.." + strconv.Itoa(h.maxBatch),
				Value:   raw,
			})
			return
		}
		count = n
	}

	ids, err := idgen.Batch(h.gen, count)
	h.issued("new", len(ids))
	if err != nil {
		if errors.Is(err, idgen.ErrMonotonicOverflow) {
			h.metrics.IncCounter(metrics.ULIDsExhausted, nil)
			h.log.Warn("monotonic sequence exhausted", "issued", len(ids), "requested", count)
			httpx.WriteProblem(w, http.StatusServiceUnavailable, httpx.Problem{
				Type:   httpx.TypeExhausted,
				Title:  "Sequence exhausted",
				Detail: err.Error(),
			})
			return
		}
		h.fail(w, r, err)
		return
	}

	views := make([]View, len(ids))
	for i, id := range ids {
		views[i] = NewView(id)
	}
	httpx.WriteJSON(w, http.StatusCreated, ListResponse{ULIDs: views})
}

// Describe decodes the text form in the path.
func (h *Handler) Describe(w http.ResponseWriter, r *http.Request) {
	id, err := h.params.ULIDParam(r, specs.ValueParam)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, NewView(id))
}

// Next returns the increment of the ULID in the path, or 409 when its
// randomness is exhausted.
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	id, err := h.params.ULIDParam(r, specs.ValueParam)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	next, ok := id.Increment()
	if !ok {
		h.metrics.IncCounter(metrics.ULIDsExhausted, nil)
		p := httpx.Problem{
			Type:   httpx.TypeExhausted,
			Title:  "Sequence exhausted",
			Detail: "randomness is at its maximum for this millisecond",
		}
		httpx.WriteProblem(w, http.StatusConflict, *p.With("ulid", id.String()))
		return
	}
	h.issued("increment", 1)
	httpx.WriteJSON(w, http.StatusOK, NewView(next))
}

// FromBytes decodes a 16-byte binary form given as hex.
func (h *Handler) FromBytes(w http.ResponseWriter, r *http.Request) {
	var req FromBytesRequest
	if !h.bind(w, r, &req) {
		return
	}
	b, err := hex.DecodeString(req.Hex)
	if err != nil {
		httpx.WriteError(w, validation.ValidationError{Field: "hex", Message: "must be hexadecimal", Value: req.Hex})
		return
	}
	id, err := ulid.FromBytes(b)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	h.respond(w, "bytes", id)
}

// FromUUID reinterprets a UUID string.
func (h *Handler) FromUUID(w http.ResponseWriter, r *http.Request) {
	var req FromUUIDRequest
	if !h.bind(w, r, &req) {
		return
	}
	id, err := ulid.ParseUUID(req.UUID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	h.respond(w, "uuid", id)
}

// FromTimestamp builds a ULID from fractional Unix seconds.
func (h *Handler) FromTimestamp(w http.ResponseWriter, r *http.Request) {
	var req FromTimestampRequest
	if !h.bind(w, r, &req) {
		return
	}
	id, err := ulid.FromTimestampSeconds(*req.Seconds, h.source)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	h.respond(w, "timestamp", id)
}

// FromDatetime builds a ULID from UTC calendar fields.
func (h *Handler) FromDatetime(w http.ResponseWriter, r *http.Request) {
	var req FromDatetimeRequest
	if !h.bind(w, r, &req) {
		return
	}
	id, err := ulid.FromDateTime(req.fields(), h.source)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	h.respond(w, "datetime", id)
}

// FromParts composes a ULID from raw fields with masking.
func (h *Handler) FromParts(w http.ResponseWriter, r *http.Request) {
	var req FromPartsRequest
	if !h.bind(w, r, &req) {
		return
	}
	randomness, err := uint128.FromString(req.Randomness)
	if err != nil {
		httpx.WriteError(w, &ulid.RangeError{Field: "randomness", Value: req.Randomness, Max: uint128.Max.String()})
		return
	}
	h.respond(w, "parts", ulid.FromParts(req.TimestampMs, randomness))
}

func (h *Handler) respond(w http.ResponseWriter, source string, id ulid.ULID) {
	h.issued(source, 1)
	httpx.WriteJSON(w, http.StatusOK, NewView(id))
}

func (h *Handler) issued(source string, n int) {
	if n > 0 {
		h.metrics.AddCounter(metrics.ULIDsIssued, float64(n), metrics.Labels{"source": source})
	}
}

// bind decodes and validates a JSON body, writing the problem response
// itself when it fails.
func (h *Handler) bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		httpx.WriteSimpleProblem(w, http.StatusBadRequest, "Malformed JSON", err.Error())
		return false
	}
	if err := h.validate.ValidateStruct(r.Context(), dst); err != nil {
		httpx.WriteError(w, err)
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("ulid request failed", "path", r.URL.Path, "err", err)
	httpx.WriteError(w, err)
}
