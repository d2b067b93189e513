// Package cache provides file-based caching with TTL expiration for fetched member documents.
//
// Only the raw document returned by a source is cached, never the edited
// record state. Key features:
//   - File-based storage in ~/.adminui/cache/, one JSON file per source
//   - Configurable TTL via config file or the --cache-ttl flag
//   - Expired entries are reported as ErrCacheExpired and removed lazily
//   - SHA256-based cache keys so any source string maps to a safe file name
package cache
