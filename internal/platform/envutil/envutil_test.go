package envutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntAndFloat(t *testing.T) {
	t.Setenv("RB_INT", "42")
	t.Setenv("RB_BAD_INT", "forty")
	t.Setenv("RB_FLOAT", "0.25")

	assert.Equal(t, 42, Int("RB_INT", 1))
	assert.Equal(t, 1, Int("RB_BAD_INT", 1))
	assert.Equal(t, 7, Int("RB_MISSING_INT", 7))
	assert.Equal(t, 0.25, Float("RB_FLOAT", 1))
	assert.Equal(t, 1.5, Float("RB_MISSING_FLOAT", 1.5))
}

func TestBool(t *testing.T) {
	cases := map[string]bool{"true": true, "ON": true, "0": false, "no": false}
	for raw, want := range cases {
		t.Setenv("RB_BOOL", raw)
		assert.Equal(t, want, Bool("RB_BOOL", !want), raw)
	}
	t.Setenv("RB_BOOL", "maybe")
	assert.True(t, Bool("RB_BOOL", true))
}

func TestStringAndList(t *testing.T) {
	t.Setenv("RB_STRING", "  sqlite  ")
	t.Setenv("RB_LIST", "http://a, ,http://b,")

	assert.Equal(t, "sqlite", String("RB_STRING", "postgres"))
	assert.Equal(t, "postgres", String("RB_MISSING_STRING", "postgres"))
	assert.Equal(t, []string{"http://a", "http://b"}, List("RB_LIST", nil))
	assert.Equal(t, []string{"x"}, List("RB_MISSING_LIST", []string{"x"}))
}
