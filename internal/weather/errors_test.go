package weather

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipelineErrors(t *testing.T) {
	cause := errors.New("boom")

	err := NewFetchError("341249", cause)
	assert.Equal(t, "FETCH_ERROR [341249]: unable to get forecast (caused by: boom)", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsKind(err, KindFetch))
	assert.False(t, IsKind(err, KindSend))

	wrapped := fmt.Errorf("run: %w", NewReadError("1", "1-2024-01-01T14", ErrNoForecast))
	assert.True(t, IsKind(wrapped, KindRead))
	assert.ErrorIs(t, wrapped, ErrNoForecast)

	assert.Equal(t, "WRITE_ERROR", NewWriteError("1", "r1", cause).Kind.String())
	assert.Equal(t, "SEND_ERROR", NewSendError("1", cause).Kind.String())
	assert.Equal(t, "UNKNOWN_ERROR", KindUnknown.String())
	assert.False(t, IsKind(cause, KindFetch))
}
