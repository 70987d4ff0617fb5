package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocales(t *testing.T) {
	assert := assert.New(t)

	assert.NotEmpty(Locales())
}

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("halted", From("halted"))
	assert.Equal("no register R9", From("no register R%d", 9))
	assert.Equal("label loop missing", From("label %v missing", "loop"))
}
