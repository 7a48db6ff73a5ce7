package simpletxmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	serialization := &pq.Error{Code: "40001"}

	t.Run("detected through commit wrap", func(t *testing.T) {
		err := fmt.Errorf("%w: %w", ErrCommitTx, serialization)
		assert.True(t, isSerializationFailure(err))
	})

	t.Run("other errors are not retried", func(t *testing.T) {
		assert.False(t, isSerializationFailure(nil))
		assert.False(t, isSerializationFailure(errors.New("connection reset")))
		assert.False(t, isSerializationFailure(fmt.Errorf("%w: %w", ErrCommitTx, &pq.Error{Code: "23505"})))
	})
}
