// Package redis provides Redis client initialization and health checking.
//
// Connect validates the connection URL, establishes a client with retry
// logic, and verifies connectivity with a ping before returning. Healthcheck
// returns a probe function suitable for readiness endpoints.
//
// Configuration is environment-driven:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// Both redis:// and rediss:// (TLS) URL schemes are supported.
package redis
