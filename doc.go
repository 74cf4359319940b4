// Package threads provides the Threads API server.

// This package contains the main application entry point. The actual API
// documentation is organized into subpackages:

// - internal/handlers: HTTP request handlers for all API endpoints
// - internal/models: Data models and database schemas
// - internal/store: User directory and thread store over gorm
// - internal/service: Feed pagination and activity aggregation
// - internal/revalidate: Stale-path cache invalidation signaling
// - internal/cache: Redis connection and helpers
// - internal/database: Database connection and migrations
// - internal/middleware: HTTP middleware (identity, caching, metrics)
// - internal/seed: Development data seeding

// See the individual package documentation for detailed API reference.
package threads
