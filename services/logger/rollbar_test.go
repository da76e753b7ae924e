package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/siddharth-debugs/college-erp-bite/core"
)

func TestRollbarLogger_print(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := NewRollbarLogger(log.New(buf, "TEST : ", 0), &core.Config{Env: "TEST", Build: "test"})
	logger.Enable(false)

	logger.Error("fetching students", errors.New("boom"), Person{ID: "1", Username: "asha"})
	logger.Info("loaded", map[string]interface{}{"count": 3})

	out := buf.String()
	assert.Contains(t, out, "TEST : [ERROR] fetching students")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "asha")
	assert.Contains(t, out, "[INFO] loaded")
	assert.Contains(t, out, "map[count:3]")
}
