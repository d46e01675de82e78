package command

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRegister(t *testing.T) {
	table := NewTable()
	noop := HandlerFunc(func(context.Context, json.RawMessage) (json.RawMessage, error) { return nil, nil })

	require.NoError(t, table.Register("b", noop))
	require.NoError(t, table.Register("a", noop))

	err := table.Register("a", noop)
	assert.ErrorIs(t, err, ErrDuplicateCommand)

	assert.Error(t, table.Register("", noop))
	assert.Error(t, table.Register("c", nil))

	assert.Equal(t, []string{"a", "b"}, table.Names())
}

func TestTableInvoke(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Register("echo", HandlerFunc(func(_ context.Context, p json.RawMessage) (json.RawMessage, error) {
		return p, nil
	})))
	require.NoError(t, table.Register("fail", HandlerFunc(func(context.Context, json.RawMessage) (json.RawMessage, error) {
		return nil, errors.New("disk full")
	})))
	require.NoError(t, table.Register("panic", HandlerFunc(func(context.Context, json.RawMessage) (json.RawMessage, error) {
		panic("bad handler")
	})))

	ctx := context.Background()

	res := table.Invoke(ctx, "echo", json.RawMessage(`{"x":1}`))
	assert.True(t, res.OK)
	assert.JSONEq(t, `{"x":1}`, string(res.Data))
	assert.NoError(t, res.Err())

	res = table.Invoke(ctx, "fail", nil)
	assert.False(t, res.OK)
	assert.Equal(t, "disk full", res.Error)
	assert.EqualError(t, res.Err(), "disk full")

	res = table.Invoke(ctx, "panic", nil)
	assert.False(t, res.OK)
	assert.Contains(t, res.Error, "bad handler")

	res = table.Invoke(ctx, "missing", nil)
	assert.False(t, res.OK)
	assert.Contains(t, res.Error, ErrUnknownCommand.Error())
}

func TestResultJSONShape(t *testing.T) {
	ok, err := json.Marshal(Result{OK: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(ok))

	failed, err := json.Marshal(Result{Error: "permission denied"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":false,"error":"permission denied"}`, string(failed))
}

func TestBytesMarshalsAsNumberArray(t *testing.T) {
	data, err := json.Marshal(WriteRequest{Path: "/tmp/out.bin", Bytes: Bytes{1, 2, 255}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"/tmp/out.bin","bytes":[1,2,255]}`, string(data))

	data, err = json.Marshal(WriteRequest{Path: "p"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"p","bytes":[]}`, string(data))
}
