// Package acl translates between downstream wire formats and the domain.
//
// Wire types never leave this package. Adapters embed [BaseAdapter], which
// sends requests through the instrumented client and maps failures with
// [MapHTTPError] and [MapStatus]:
//
//   - circuit open or no response → [domain.ErrUnavailable]
//   - 401, 403 or PERMISSION_DENIED/UNAUTHENTICATED → [domain.ErrForbidden]
//   - 404 → [domain.ErrNotFound]
//   - 400 or INVALID_ARGUMENT → [domain.ErrValidation]
//   - 429, RESOURCE_EXHAUSTED or 5xx → [domain.ErrUnavailable]
//
// [GeminiClient] is the only adapter. For generation it distinguishes a
// response it could read but not use, reported as
// [domain.ErrMalformedGeneration], from one it could not get or decode.
package acl
