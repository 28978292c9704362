// Package server serves htmlkit rendering over HTTP, WebSocket and
// Server-Sent Events.
//
// # Routes
//
//	POST /v1/escape      {"text": "..."}                    -> {"html": "..."}
//	POST /v1/attributes  {"attributes": {...}}              -> {"html": "..."}
//	POST /v1/element     {"tag", "attributes", "content", "void"} -> {"html": "..."}
//	POST /v1/render      document (YAML or JSON)            -> text/html
//	POST /v1/sanitize    {"text": "..." | null}             -> {"text": ...}
//	POST /v1/patch       document                           -> datastar SSE
//	GET  /ws             one render request per message
//	GET  /metrics        Prometheus exposition
//	GET  /healthz        liveness
//
// Request bodies are decoded with yaml.v3, which accepts JSON and keeps the
// key order of attribute objects.
//
// # Errors
//
// Rendering and decoding failures carry an htmlkit error code and are
// answered with 400 and a JSON body:
//
//	{"code": "H002", "message": "H002: Invalid attribute name (...)"}
//
// Anything else is a 500.
//
// # Usage
//
//	srv := server.New(server.ConfigFrom(cfg),
//	    server.WithLogger(logger),
//	    server.WithCache(cache.NewMemory(1024)),
//	)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
