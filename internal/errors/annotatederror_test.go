package errors_test

import (
	"log/slog"
	"slices"
	"testing"

	"github.com/myrjola/checkpoint/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestAnnotatedError(t *testing.T) {
	err := errors.New("test error", slog.String("id", "123"))
	require.Equal(t, "test error", err.Error())

	// Wrapping sentinel errors keeps them detectable.
	sentinel := errors.NewSentinel("sentinel")
	require.NotErrorIs(t, err, sentinel)
	wrapped := errors.Wrap(sentinel, "load session", slog.String("session", "abc"))
	require.ErrorIs(t, wrapped, sentinel)
	require.Equal(t, "load session: sentinel", wrapped.Error())

	// Ensure log values are coming through, including the ones from deeper in the chain.
	outer := errors.Wrap(errors.Wrap(err, "inner"), "outer", slog.String("layer", "outer"))
	var annotated *errors.AnnotatedError
	require.True(t, errors.As(outer, &annotated))
	group := annotated.LogValue().Group()
	require.Contains(t, group, slog.String("id", "123"))
	require.Contains(t, group, slog.String("layer", "outer"))

	sourceIdx := slices.IndexFunc(group, func(attr slog.Attr) bool {
		return attr.Key == "source"
	})
	require.NotEqual(t, -1, sourceIdx)
	require.Contains(t, group[sourceIdx].Value.String(), "annotatederror_test.go")
}

func TestWrapNil(t *testing.T) {
	require.NoError(t, errors.Wrap(nil, "nothing to wrap"))
}

func TestSlogError(t *testing.T) {
	plain := errors.NewSentinel("plain")
	require.Equal(t, slog.String("error", "plain"), errors.SlogError(plain))

	attr := errors.SlogError(errors.Wrap(plain, "wrapped"))
	require.Equal(t, "error", attr.Key)
	require.Equal(t, slog.KindLogValuer, attr.Value.Kind())
}
