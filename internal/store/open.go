package store

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

const connectMaxElapsed = 15 * time.Second

// ConnectBackoff returns the retry policy for the first contact with a
// network slot. BackOff values are stateful; always use a fresh one.
func ConnectBackoff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = connectMaxElapsed
	return bo
}

// ParseDriver maps a configured driver name onto a Driver.
func ParseDriver(name string) (Driver, error) {
	switch d := Driver(name); d {
	case "":
		return DriverFile, nil
	case DriverFile, DriverMemory, DriverSQLite, DriverPostgres, DriverS3:
		return d, nil
	case "fs", "json":
		return DriverFile, nil
	case "pg", "postgresql":
		return DriverPostgres, nil
	}
	return "", &driverError{name: name}
}

type driverError struct{ name string }

func (e *driverError) Error() string { return ErrUnknownDriver.Error() + " " + e.name }
func (e *driverError) Unwrap() error { return ErrUnknownDriver }
