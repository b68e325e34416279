package intrinsics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedBuffer_Write(t *testing.T) {
	t.Run("writes within limit", func(t *testing.T) {
		buf := NewBoundedBuffer(100)
		n, err := buf.Write([]byte("hello"))
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Equal(t, "hello", buf.String())
		assert.False(t, buf.Truncated())
	})

	t.Run("truncates at limit", func(t *testing.T) {
		buf := NewBoundedBuffer(10)
		n, err := buf.Write([]byte("hello world"))
		require.NoError(t, err)
		assert.Equal(t, 11, n)
		assert.Equal(t, "hello worl", buf.String())
		assert.True(t, buf.Truncated())
	})

	t.Run("discards once full", func(t *testing.T) {
		buf := NewBoundedBuffer(5)
		_, _ = buf.Write([]byte("hello"))
		assert.False(t, buf.Truncated())

		n, err := buf.Write([]byte("more"))
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, "hello", buf.String())
		assert.True(t, buf.Truncated())
	})

	t.Run("reset", func(t *testing.T) {
		buf := NewBoundedBuffer(3)
		_, _ = buf.Write([]byte("abcdef"))
		buf.Reset()
		assert.Empty(t, buf.String())
		assert.False(t, buf.Truncated())
	})
}

func TestBoundedBuffer_BytesIsCopy(t *testing.T) {
	buf := NewBoundedBuffer(10)
	_, _ = buf.Write([]byte("abc"))

	b := buf.Bytes()
	b[0] = 'X'
	assert.Equal(t, "abc", buf.String())
}

func TestBoundedBuffer_AsIntrinsicStream(t *testing.T) {
	buf := NewBoundedBuffer(4)
	assert.Equal(t, 0.0, Printd(buf, 3.14))
	assert.Equal(t, `"3.1`, buf.String())
	assert.True(t, buf.Truncated())
}

func TestBoundedBuffer_ConcurrentWrites(t *testing.T) {
	buf := NewBoundedBuffer(DefaultMaxCaptureSize)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				Putchard(buf, 65)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, buf.Bytes(), 8*100*2)
}
