package calculator

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermotube/model"
)

func TestStream(t *testing.T) {
	input := []float64{20, 20, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60}
	var got []model.Sample
	res, err := Stream(context.Background(), DefaultConfig(), input, 2, func(s model.Sample) error {
		got = append(got, s)
		return nil
	})
	require.NoError(t, err)

	want, err := Simulate(DefaultConfig(), input, 2)
	require.NoError(t, err)
	assert.Equal(t, want, res)

	require.Len(t, got, len(input))
	for i, s := range got {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, want.Time[i], s.Time)
		assert.Equal(t, input[i], s.Inlet)
		assert.Equal(t, want.Outlet[i], s.Outlet)
	}
}

func TestStreamStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	count := 0
	res, err := Stream(ctx, DefaultConfig(), []float64{1, 2, 3, 4, 5, 6}, 5, func(s model.Sample) error {
		count++
		if count == 3 {
			cancel()
		}
		return nil
	})
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 3, count)
}

func TestStreamPushError(t *testing.T) {
	errPush := errors.New("connection closed")
	_, err := Stream(context.Background(), DefaultConfig(), []float64{1, 2, 3}, 5, func(s model.Sample) error {
		return errPush
	})
	assert.True(t, errors.Is(err, errPush))
}

func TestStreamInvalidInput(t *testing.T) {
	_, err := Stream(context.Background(), DefaultConfig(), nil, 5, func(s model.Sample) error {
		t.Fatal("push must not be called")
		return nil
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestStreamNilPush(t *testing.T) {
	input := []float64{20, 40, 40}
	res, err := Stream(context.Background(), DefaultConfig(), input, 5, nil)
	require.NoError(t, err)

	want, err := Simulate(DefaultConfig(), input, 5)
	require.NoError(t, err)
	assert.Equal(t, want, res)
}
