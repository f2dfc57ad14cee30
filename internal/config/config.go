package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=company_transfer_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultChannelID = "LedgerlineApp"
const defaultChannelKey = "LedgerlineKey001"

const (
	IdempotencyBackendPostgres = "postgres"
	IdempotencyBackendRedis    = "redis"
	IdempotencyBackendMemory   = "memory"
)

type Config struct {
	DatabaseDSN        string
	MigrationsDir      string
	ListenAddr         string
	ChannelID          string
	ChannelKey         string
	IdempotencyBackend string
	RedisAddr          string
	RedisPassword      string
	IdempotencyTTL     time.Duration
}

func Load() (Config, error) {
	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	migrationsDir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	channelID := strings.TrimSpace(os.Getenv("CHANNEL_ID"))
	if channelID == "" {
		channelID = defaultChannelID
	}

	channelKey := strings.TrimSpace(os.Getenv("CHANNEL_KEY"))
	if channelKey == "" {
		channelKey = defaultChannelKey
	}

	backend := strings.ToLower(strings.TrimSpace(os.Getenv("IDEMPOTENCY_BACKEND")))
	if backend == "" {
		backend = IdempotencyBackendPostgres
	}
	switch backend {
	case IdempotencyBackendPostgres, IdempotencyBackendRedis, IdempotencyBackendMemory:
	default:
		return Config{}, fmt.Errorf("unsupported IDEMPOTENCY_BACKEND %q", backend)
	}

	redisAddr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	ttlHours := 24
	if raw := strings.TrimSpace(os.Getenv("IDEMPOTENCY_TTL_HOURS")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("invalid IDEMPOTENCY_TTL_HOURS %q", raw)
		}
		ttlHours = parsed
	}

	return Config{
		DatabaseDSN:        normalizeConnectionString(conn),
		MigrationsDir:      migrationsDir,
		ListenAddr:         listenAddr,
		ChannelID:          channelID,
		ChannelKey:         channelKey,
		IdempotencyBackend: backend,
		RedisAddr:          redisAddr,
		RedisPassword:      strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		IdempotencyTTL:     time.Duration(ttlHours) * time.Hour,
	}, nil
}

// normalizeConnectionString accepts either a libpq keyword string or an
// ADO.NET style "Key=Value;..." string and produces libpq keywords.
func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
