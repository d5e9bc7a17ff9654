package gtest_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/gordian-engine/gvigil/internal/gtest"
	"github.com/stretchr/testify/require"
)

type fatalHelper struct {
	HelperCalled bool
	FatalMessage string
}

func (h *fatalHelper) Helper() {
	h.HelperCalled = true
}

func (h *fatalHelper) Fatalf(format string, args ...any) {
	h.FatalMessage = fmt.Sprintf(format, args...)
}

func TestReceiveOrTimeout(t *testing.T) {
	t.Run("receive within time", func(t *testing.T) {
		t.Parallel()

		ch := make(chan int)

		go func() {
			time.Sleep(5 * time.Millisecond)
			ch <- 1
		}()

		fh := new(fatalHelper)

		n := gtest.ReceiveOrTimeout(fh, ch, gtest.ScaleMs(1000))

		require.Equal(t, n, 1)

		require.True(t, fh.HelperCalled)
		require.Empty(t, fh.FatalMessage)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		ch := make(chan string)

		fh := new(fatalHelper)

		const ms = 5
		before := time.Now()
		require.Panics(t, func() {
			_ = gtest.ReceiveOrTimeout(fh, ch, gtest.ScaleMs(ms))
		})
		after := time.Now()

		require.GreaterOrEqual(t, after.Sub(before), ms*time.Millisecond)

		require.True(t, fh.HelperCalled)
		require.NotEmpty(t, fh.FatalMessage)
	})

	t.Run("fatal on nil channel", func(t *testing.T) {
		t.Parallel()

		fh := new(fatalHelper)

		require.Panics(t, func() {
			_ = gtest.ReceiveOrTimeout(fh, (chan int)(nil), gtest.ScaleMs(5))
		})

		require.True(t, fh.HelperCalled)
		require.NotEmpty(t, fh.FatalMessage)
	})
}

func TestNothingReceived(t *testing.T) {
	t.Run("quiet channel passes", func(t *testing.T) {
		t.Parallel()

		ch := make(chan int)

		fh := new(fatalHelper)

		gtest.NothingReceived(fh, ch, gtest.ScaleMs(5))

		require.True(t, fh.HelperCalled)
		require.Empty(t, fh.FatalMessage)
	})

	t.Run("noisy channel fails", func(t *testing.T) {
		t.Parallel()

		ch := make(chan int, 1)
		ch <- 3

		fh := new(fatalHelper)

		gtest.NothingReceived(fh, ch, gtest.ScaleMs(5))

		require.True(t, fh.HelperCalled)
		require.NotEmpty(t, fh.FatalMessage)
	})
}
