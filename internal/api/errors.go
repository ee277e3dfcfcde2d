// Package api realizes the four RPC-shaped endpoints from spec §6 as plain
// Go interfaces — the spec keeps wire framing out of the core's scope, so
// only the shape is built here, plus a thin gin adapter for the two
// endpoints worth exposing over HTTP in this repository.
package api

import "github.com/docflex/gRPC-File-Processor/internal/fileerr"

// MapError implements spec §6's wire error mapping as a pure function so
// both the gin adapter and any future real gRPC adapter share it without
// duplicating the decision: InvalidArgument maps to INVALID_ARGUMENT,
// anything else (including unclassified errors) maps to INTERNAL.
func MapError(err error) (code string, message string) {
	if err == nil {
		return "", ""
	}
	if fileerr.KindOf(err) == fileerr.KindInvalidArgument {
		return "INVALID_ARGUMENT", err.Error()
	}
	return "INTERNAL", err.Error()
}
