package db

// Config carries the connection settings Dialect and Open consume.
// internal/config populates it from the DATABASE_* environment.
// Lifetime values are seconds.
type Config struct {
	Type            string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxIdleConn     int
	MaxOpenConn     int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}
