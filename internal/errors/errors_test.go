package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOfWrapped(t *testing.T) {
	err := fmt.Errorf("employee emp_9: %w", ErrNotFound)

	assert.Equal(t, "NOT_FOUND", CodeOf(err))
	assert.Equal(t, "", CodeOf(fmt.Errorf("plain")))

	de, ok := As(err)
	assert.True(t, ok)
	assert.Same(t, ErrNotFound, de)
}
