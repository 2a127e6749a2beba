package recipes

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/recipes/internal/model"
)

// IDGenerator mints candidate recipe ids. The store re-asks while a
// candidate collides with an existing record.
type IDGenerator interface {
	Next() model.ID
}

// ClockIDs mints millisecond timestamps, strictly increasing within a process.
type ClockIDs struct {
	Now  func() time.Time
	last int64
}

func (c *ClockIDs) Next() model.ID {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	ms := now().UnixMilli()
	if ms <= c.last {
		ms = c.last + 1
	}
	c.last = ms
	return model.ID(strconv.FormatInt(ms, 10))
}

// UUIDs mints random version 4 UUIDs.
type UUIDs struct{}

func (UUIDs) Next() model.ID { return model.ID(uuid.NewString()) }

// NewIDGenerator maps a configured scheme name onto a generator.
func NewIDGenerator(scheme string) (IDGenerator, bool) {
	switch scheme {
	case "", "clock", "timestamp":
		return &ClockIDs{}, true
	case "uuid":
		return UUIDs{}, true
	}
	return nil, false
}
