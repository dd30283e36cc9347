// Package main implements the entry point for the Taskline API server,
// which serves authenticated task CRUD, aggregate statistics, text search,
// Google-identity login, and AI-generated task-list summaries.
package main

import (
	"context"
	"log"
)

// main initializes configuration, logging, the database, and all services,
// then runs the HTTP server until it is signalled to stop.
func main() {
	ctx := context.Background()

	app, err := newApplication(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
