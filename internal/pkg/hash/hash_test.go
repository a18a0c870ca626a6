package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordIsDeterministic(t *testing.T) {
	first := Password("secret123")
	second := Password("secret123")

	assert.Equal(t, first, second)
}

func TestPasswordKnownVector(t *testing.T) {
	// SHA-256("secret123"), hex encoded.
	assert.Equal(t,
		"fcf730b6d95236ecd3c9fc2d92d7b6b2bb061514961aec041d6c7a7192f592e4",
		Password("secret123"))
}

func TestPasswordLengthAndDistinctInputs(t *testing.T) {
	digest := Password("alpha")

	assert.Len(t, digest, 64)
	assert.NotEqual(t, digest, Password("beta"))
	assert.NotEqual(t, digest, Password("Alpha"))
}

func TestPasswordEmptyInputStillHashes(t *testing.T) {
	assert.Len(t, Password(""), 64)
}
