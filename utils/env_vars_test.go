package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("CHALLENGE_TEST_STRING", "firestore")
	t.Setenv("CHALLENGE_TEST_INT", "12")
	t.Setenv("CHALLENGE_TEST_BOOL", "true")
	t.Setenv("CHALLENGE_TEST_DURATION", "90s")
	t.Setenv("CHALLENGE_TEST_EMPTY", "")

	assert.Equal(t, "firestore", GetEnv("CHALLENGE_TEST_STRING", "memory"))
	assert.Equal(t, 12, GetEnv("CHALLENGE_TEST_INT", 3))
	assert.True(t, GetEnv("CHALLENGE_TEST_BOOL", false))
	assert.Equal(t, 90*time.Second, GetEnv("CHALLENGE_TEST_DURATION", time.Minute))
	assert.Equal(t, "memory", GetEnv("CHALLENGE_TEST_EMPTY", "memory"))
	assert.Equal(t, 8080, GetEnv("CHALLENGE_TEST_UNSET", 8080))
}
