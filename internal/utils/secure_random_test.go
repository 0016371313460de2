package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomHex(t *testing.T) {
	first, err := RandomHex(16)
	assert.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := RandomHex(16)
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)

	_, err = RandomHex(0)
	assert.Error(t, err)
}
