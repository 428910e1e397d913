package storage

import "fmt"

// Driver identifies a storage backend.
type Driver string

const (
	// DriverSQLite is the default embedded-database backend.
	DriverSQLite Driver = "sqlite"
	// DriverFile keeps one file per key under a root directory.
	DriverFile Driver = "file"
	// DriverMemory is the in-memory test backend; nothing survives the process.
	DriverMemory Driver = "memory"
)

// Open selects and constructs a Store implementation.
// Path is the database file for sqlite and the root directory for file.
func Open(driver Driver, path string) (Store, error) {
	switch driver {
	case DriverSQLite, "":
		return NewSQLite(path)
	case DriverFile:
		return NewFile(path)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
