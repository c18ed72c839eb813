// Package redis provides connection bootstrap and health checking for the
// Redis instance backing the distributed tenant cache (see tenant.RedisCache).
// Configuration comes from environment variables via the Config struct.
package redis
