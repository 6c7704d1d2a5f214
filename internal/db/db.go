package db

import "database/sql"

// DB wraps the sql handle so services depend on one internal type.
type DB struct {
	*sql.DB
}
