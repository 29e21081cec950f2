// Package testdb provides live document store environments for integration tests.
//
// Tests that need a real SurrealDB or Redis server call New or NewRedis. When the
// matching environment variable is not set the test is skipped, so the default
// test run needs no external services.
//
// # SurrealDB
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t) // skips unless TEST_DB_URL is set
//	    defer tdb.Close()
//
//	    store := repository.NewSurrealStore(tdb.DB)
//	}
//
// Each TestDB gets its own namespace, removed again by Close.
//
// # Redis
//
//	client, prefix := testdb.NewRedis(t) // skips unless TEST_REDIS_URL is set
//
// Keys written under prefix are deleted when the test finishes.
package testdb
