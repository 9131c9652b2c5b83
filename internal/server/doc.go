// Package server provides the TCP front end of the multithread-server.
//
// The server accepts connections on a single goroutine and submits each
// accepted connection to the worker pool as one job. The job reads one HTTP/1.x
// request, runs it through a Gin engine, writes the response and closes the
// connection. No goroutine is spawned per connection: concurrency is bounded by
// the pool size.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                       Accept loop (Start)                     │
//	│   net.Listener.Accept() ──► pool.Execute(handleConnection)    │
//	└───────────────────────────────────────────────────────────────┘
//	                                │
//	                                ▼
//	┌───────────────────────────────────────────────────────────────┐
//	│                 Connection job (pool worker)                  │
//	│  1. Set deadline (ReadTimeout)                                │
//	│  2. http.ReadRequest                                          │
//	│  3. Gin engine ServeHTTP into a buffering ResponseWriter      │
//	│  4. Write response (Content-Length, Connection: close)        │
//	│  5. Close connection                                          │
//	└───────────────────────────────────────────────────────────────┘
//	                                │
//	                                ▼
//	┌───────────────────────────────────────────────────────────────┐
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  ginzap.Ginzap (request logging)                        │  │
//	│  │  ginzap.RecoveryWithZap (panic recovery with stack)     │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	│                    Routes (internal/handlers)                 │
//	└───────────────────────────────────────────────────────────────┘
//
// Each connection gets a UUID request id, logged with every line of the
// connection job and returned in the X-Request-Id header.
//
// A connection closed before sending anything is logged as "no request line
// received". A malformed request is answered with 400 Bad Request.
//
// # Server Lifecycle
//
// Creation:
//
//	router := server.NewRouter(gin.ReleaseMode, func(router *gin.Engine) {
//	    handlers.RegisterHandlers(router, h)
//	})
//	srv := server.NewServer(cfg.Server, pool, router)
//
// Starting:
//
//	// Blocks until Stop, ctx cancellation, or a refused job
//	err := srv.Start(ctx)
//
// Stopping:
//
//	srv.Stop(ctx)
//	pool.Close()
//
// Stop closes the listener and waits for the accept loop to return, so no
// Execute call can race with the pool's disposal that follows it. Connection
// jobs already queued still run during pool.Close.
package server
