package kafka

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func TestDecodeError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := error(&DecodeError{Topic: "orders", Partition: 1, Offset: 42, Index: 3, Raw: []byte("{"), Err: cause})

	require.ErrorIs(t, err, ErrDecode)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "kafka: decode orders[1]@42 (index 3): unexpected EOF", err.Error())

	var derr *DecodeError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &derr)
	require.Equal(t, []byte("{"), derr.Raw)
}

func TestIndexError(t *testing.T) {
	err := error(&IndexError{Index: 5, Size: 2})
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	require.NotErrorIs(t, err, ErrDecode)
	require.Equal(t, "kafka: index 5 out of range [0,2)", err.Error())
}

func TestDecodeErrors(t *testing.T) {
	require.Nil(t, DecodeErrors(nil))
	require.Empty(t, DecodeErrors(errors.New("other")))

	single := &DecodeError{Index: 7, Err: errors.New("x")}
	require.Equal(t, []*DecodeError{single}, DecodeErrors(single))

	first := &DecodeError{Index: 1, Err: errors.New("a")}
	second := &DecodeError{Index: 4, Err: errors.New("b")}
	merr := multierror.Append(nil, second, errors.New("unrelated"), first)
	require.Equal(t, []*DecodeError{first, second}, DecodeErrors(merr))
}
