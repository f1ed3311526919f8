package database

import "time"

// Conexão com o CRM legado, usada apenas pela importação de leads antigos.
const (
	MYSQL_CONN_MAX_LIFETIME = 5 * time.Minute
	MYSQL_MAX_OPEN_CONNS    = 10
	MYSQL_MAX_IDLE_CONNS    = 10
)
