package action

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/boardwalk/internal/contract"
)

type echoIn struct{ Value string }

func validateEcho(in echoIn) contract.FieldErrors {
	var fe contract.FieldErrors
	if in.Value == "" {
		fe.Add("value", "Value is required")
	}
	return fe
}

func TestDefine_ValidationShortCircuits(t *testing.T) {
	log, _ := test.NewNullLogger()
	called := false
	act := Define("echo", log, validateEcho, func(ctx context.Context, in echoIn) (string, error) {
		called = true
		return in.Value, nil
	})

	res, err := act(context.Background(), echoIn{})

	require.NoError(t, err)
	assert.False(t, called)
	assert.Nil(t, res.Data)
	assert.Empty(t, res.Error)
	assert.Equal(t, contract.ErrValidation, res.Code)
	assert.Equal(t, []string{"Value is required"}, res.FieldErrors["value"])
}

func TestDefine_Success(t *testing.T) {
	act := Define("echo", nil, validateEcho, func(ctx context.Context, in echoIn) (string, error) {
		return "got " + in.Value, nil
	})

	res, err := act(context.Background(), echoIn{Value: "x"})

	require.NoError(t, err)
	require.NotNil(t, res.Data)
	assert.Equal(t, "got x", *res.Data)
	assert.Empty(t, res.Code)
}

func TestDefine_MapsTypedErrors(t *testing.T) {
	log, hook := test.NewNullLogger()
	act := Define("echo", log, nil, func(ctx context.Context, in echoIn) (string, error) {
		return "", fmt.Errorf("authorizing: %w", contract.UnauthorizedError("Not a member of this organization"))
	})

	res, err := act(context.Background(), echoIn{})

	require.NoError(t, err)
	assert.Equal(t, contract.ErrUnauthorized, res.Code)
	assert.Equal(t, "Not a member of this organization", res.Error)
	assert.Empty(t, hook.AllEntries(), "expected rejections are logged at debug only")
}

func TestDefine_UnknownErrorBecomesPersistence(t *testing.T) {
	log, hook := test.NewNullLogger()
	act := Define("echo", log, nil, func(ctx context.Context, in echoIn) (string, error) {
		return "", errors.New("database is locked")
	})

	res, err := act(context.Background(), echoIn{})

	require.NoError(t, err)
	assert.Equal(t, contract.ErrPersistence, res.Code)
	assert.Equal(t, "Failed to complete the request", res.Error)
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "echo", hook.LastEntry().Data["action"])
}
