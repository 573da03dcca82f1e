// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP responses
// (via the `fail()` helper in this package). These codes provide clients with a stable,
// machine-readable error taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, forbidden, not_found) mirror common HTTP
//     status semantics to aid interoperability.
//   - Domain-specific codes (e.g., quota_exceeded, country_not_eligible) carry
//     eligibility-rule outcomes that a status code alone cannot convey.
//   - Upstream codes (upstream_*) identify external-registry failures so clients
//     can distinguish "our fault" from "registry down".
//   - All error responses must include both an HTTP status and one of these codes.
package handlers

const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeForbidden   = "forbidden"
	ErrCodeNotFound    = "not_found"
	ErrCodeRateLimited = "too_many_requests"
	ErrCodeInternal    = "internal_error"

	// Eligibility rules:
	ErrCodeQuotaExceeded      = "quota_exceeded"
	ErrCodeCountryNotEligible = "country_not_eligible"
	ErrCodeEmptyGroup         = "empty_group"
	ErrCodeInvalidGroupSize   = "invalid_group_size"
	ErrCodeUnknownMember      = "unknown_member"

	// External registry:
	ErrCodeUpstreamTimeout     = "upstream_timeout"
	ErrCodeUpstreamUnavailable = "upstream_unavailable"
	ErrCodeUpstreamFormat      = "upstream_format"

	// Generic operation failures:
	ErrCodeCreateFailed     = "create_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
