package config

type StorageConfig interface {
	GetDatabaseURL() string
	GetRedisAddr() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

// GetDatabaseURL returns the Postgres connection string. When empty the
// server falls back to in-memory repositories (development mode).
func (Storage) GetDatabaseURL() string {
	return GetEnv("DATABASE_URL", "")
}

// GetRedisAddr returns the Redis address for the refresh-token denylist.
// When empty the server uses the in-memory denylist.
func (Storage) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "")
}
