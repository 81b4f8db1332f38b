// Package services contains the range's business logic. Services hold the
// shared *sql.DB and a repository manager and never check who is calling.
package services

import "time"

// nowFunc is a seam for tests.
var nowFunc = time.Now
