// Package database provides database connectivity for the Chapel API.
//
// The database package wraps the SurrealDB Go client behind a small
// query interface. Connections are made to a websocket or HTTP endpoint:
//
//	db := database.NewSurrealDB(database.Config{
//	    URL:       "ws://localhost:8000",
//	    Namespace: "church",
//	    Database:  "church",
//	    User:      "root",
//	    Password:  "secret",
//	})
//
// A SurrealDB value that was never connected (or whose Connect failed) is
// still usable: every call returns ErrConnection, which the repository layer
// reports as an unavailable store.
package database
