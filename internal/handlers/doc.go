// Package handlers implements the HTTP routes served by the multithread-server.
//
// Every route runs inside a worker pool job: the server reads one request from
// an accepted connection and hands it to the Gin engine these handlers are
// registered on. Handlers therefore run on a pool worker and may block it, as
// GET /sleep does on purpose.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│              Connection job (pool worker)                       │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                 Gin engine + ginzap middleware                  │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Static file lookup in StaticsFolder                          │
//	│  - Content type from the file extension                         │
//	│  - Prometheus exposition                                        │
//	└─────────────────────────────────────────────────────────────────┘
//
// # API Endpoints
//
//	┌────────┬────────────┬────────────────┬────────────────────────────────┐
//	│ Method │ Endpoint   │ File           │ Description                    │
//	├────────┼────────────┼────────────────┼────────────────────────────────┤
//	│ GET    │ /          │ index.html     │ Landing page                   │
//	│ GET    │ /sleep     │ response.json  │ Sleeps SleepDuration first     │
//	│ GET    │ /xml       │ index.xml      │ XML document                   │
//	│ GET    │ /xml_error │ error.xml      │ XML error document (200)       │
//	│ GET    │ /api       │ response.json  │ JSON document                  │
//	│ GET    │ /metrics   │ -              │ Prometheus metrics             │
//	│ *      │ *          │ 404.html       │ Not found (404)                │
//	└────────┴────────────┴────────────────┴────────────────────────────────┘
//
// # Content Types
//
//	html → text/html
//	xml  → text/xml
//	json → application/json
//	*    → text/plain
//
// # Error Handling
//
// A file missing from StaticsFolder is logged and answered with
// 500 Internal Server Error and a JSON body:
//
//	{"error": "failed to read index.html"}
package handlers
