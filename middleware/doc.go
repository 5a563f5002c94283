// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("POST /webhook", middleware.WithLogging(handler))

Every request gets an id (taken from X-Request-ID or a new UUID), available to
handlers through RequestID(r.Context()) and echoed in the response header.
Completion is logged with status and duration_ms.

# CORS Middleware

The read-only JSON endpoints can be fetched from browsers:

	mux.HandleFunc("GET /sprints", middleware.CORS(handler))

Only GET and OPTIONS are allowed; credentials are never shared.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

ParseJSONBody decodes at most MaxBodyBytes of a request body.

# Client IP Extraction

GetClientIP honours X-Forwarded-For and X-Real-IP before RemoteAddr. It is
only used for logging.
*/
package middleware
