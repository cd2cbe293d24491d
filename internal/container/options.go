// Package container wires the application graph. Each *Package function
// registers one concern's providers on a do.Injector; the binaries compose
// the packages they need.
package container

// Options holds the CLI and environment configuration shared by all
// binaries.
type Options struct {
	Port          int    `default:"8888"                                        help:"Port to listen on"                                     short:"p"`
	BaseURL       string `default:""                                            help:"Public base URL for short links (default localhost)"   short:"b"`
	DatabaseURL   string `default:"postgres://localhost:5432/linkshrink"        help:"Postgres connection string"                            short:"d"`
	RedisAddr     string `default:"localhost:6379"                              help:"Redis server address"                                  short:"r"`
	CacheTTL      int    `default:"3600"                                        help:"Link cache TTL in seconds"`
	RateLimitMax  int    `default:"60"                                          help:"Default requests per client per minute"`
	Migrations    string `default:""                                            help:"Migrations source URL (e.g. file://migrations), empty skips"`
	ConsumerGroup string `default:"analytics"                                   help:"Redis stream consumer group name"`
	LogFormat     string `default:"console"                                     help:"Log format: console or json"`
}
