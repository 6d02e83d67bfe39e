package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToday(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("no timezone database")
	}

	// 23:30 UTC is already the next day in Paris
	c := NewMock(time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, paris), Today(c, paris))
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Today(c, time.UTC))
}
