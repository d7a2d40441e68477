package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), "clinic-portal", Config{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
