package cli

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandler(t *testing.T) {
	tests := []struct {
		writer    io.Writer
		name      string
		operation string
		want      string
	}{
		{name: "with custom writer", writer: &bytes.Buffer{}, operation: "Import", want: "Import"},
		{name: "with nil writer", writer: nil, operation: "", want: "Operation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInterruptHandler(tt.writer, tt.operation)
			assert.NotNil(t, handler.writer)
			assert.Equal(t, tt.want, handler.operation)
			assert.False(t, handler.WasInterrupted())
		})
	}
}

func TestHandleInterrupts(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, "Import").WithHint("Snapshot was not written")

	parent, cancel := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent)

	select {
	case <-ctx.Done():
		t.Fatal("Context should not be canceled initially")
	default:
	}

	cancel()

	assert.Eventually(t, handler.WasInterrupted, time.Second, 10*time.Millisecond)
	<-ctx.Done()
	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(output.String()), []byte("Snapshot was not written"))
	}, time.Second, 10*time.Millisecond)
	assert.Contains(t, output.String(), "Import interrupted!")
}

func TestInterruptHandler_Stop(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, "Import")

	ctx := handler.HandleInterrupts(context.Background())
	handler.Stop()

	<-ctx.Done()
	time.Sleep(20 * time.Millisecond)

	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}
