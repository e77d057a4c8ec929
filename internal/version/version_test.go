package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFull(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "dev"
	assert.Equal(t, "whence version dev (built from source)", Full())
	assert.True(t, IsDev())

	Version = "1.2.3"
	assert.True(t, strings.HasSuffix(Full(), "1.2.3"))
	assert.False(t, IsDev())
}
