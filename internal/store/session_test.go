package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_CloseIdempotent(t *testing.T) {
	s := &Session{}
	assert.NotPanics(t, func() {
		s.Close()
		s.Close()
	})
}
