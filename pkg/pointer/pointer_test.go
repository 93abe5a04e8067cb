package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointers(t *testing.T) {
	assert.Equal(t, 5, *To(5))

	assert.Nil(t, IfValid(false, "value"))
	assert.Equal(t, "value", *IfValid(true, "value"))

	assert.EqualValues(t, 7, *OrDefault[uint8](nil, 7))
	assert.EqualValues(t, 3, *OrDefault(To[uint8](3), 7))

	assert.Nil(t, Copy[int](nil))
	original := To(1.5)
	copied := Copy(original)
	*original = 2
	assert.Equal(t, 1.5, *copied)
}
