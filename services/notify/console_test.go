package notifysvc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleNotifier(t *testing.T) {
	buf := new(bytes.Buffer)
	n := NewConsoleNotifier(buf)
	n.Success("OTP sent successfully")
	n.Error("Invalid OTP")
	assert.Equal(t, "[success] OTP sent successfully\n[error] Invalid OTP\n", buf.String())
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Info("loading")
	r.Error("first")
	r.Warn("careful")
	r.Error("second")

	assert.Len(t, r.Sent(), 4)
	assert.Equal(t, []string{"first", "second"}, r.Messages(LevelError))

	r.Reset()
	assert.Empty(t, r.Sent())
}
