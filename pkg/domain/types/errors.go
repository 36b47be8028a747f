package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures so that callers (HTTP layer, CLI) can map
// them without string matching.
var (
	// TagSourceNetwork marks transport-level failures: unresolvable host,
	// connection refused, timeout, or a malformed base URL.
	TagSourceNetwork = goerr.NewTag("source_network")

	// TagSourceUnknownTarget marks HTTP 404 from a source, meaning the
	// component key or board ID does not exist there.
	TagSourceUnknownTarget = goerr.NewTag("source_unknown_target")

	// TagSourceRejected marks any other non-2xx response, typically a bad
	// or expired access token.
	TagSourceRejected = goerr.NewTag("source_rejected")

	// TagDecodeFailure marks a 2xx response whose payload violates the
	// schema the client expects.
	TagDecodeFailure = goerr.NewTag("decode_failure")

	// TagNotFound marks lookups for entities that do not exist.
	TagNotFound = goerr.NewTag("not_found")
)

// Sentinel errors. Source clients wrap these so that errors.Is works in
// addition to tag matching.
var (
	ErrSourceUnavailable = goerr.New("external source is unavailable")
	ErrPayloadDecode     = goerr.New("source payload does not match the expected schema")
	ErrProductNotFound   = goerr.New("product not found", goerr.T(TagNotFound))
)
