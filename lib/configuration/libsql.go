package configuration

import (
	"database/sql"
	"fmt"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

type Libsql struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

// opens a local sqlite file when no url is given, otherwise connects
// to the remote libsql database
func (config Libsql) OpenDB() (*sql.DB, error) {
	if config.Url == "" {
		return sql.Open("sqlite", config.File)
	}

	dsn := config.Url
	if config.AuthToken != "" {
		dsn = fmt.Sprintf("%s?authToken=%s", config.Url, config.AuthToken)
	}
	return sql.Open("libsql", dsn)
}
