package main

import (
	"bytes"
	"testing"

	"github.com/aleister1102/seatwatch/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderState(t *testing.T) {
	snapshot := models.NewSnapshot()
	snapshot.Set(models.NewCourseRecord("ABC123", 3))
	closed := models.NewCourseRecord("DEF456", 0)
	closed.GoneNotified = true
	snapshot.Set(closed)

	var out bytes.Buffer
	renderState(&out, "state.json", snapshot)

	rendered := out.String()
	assert.Contains(t, rendered, "state.json")
	assert.Contains(t, rendered, "Gone notified")
	assert.Contains(t, rendered, "2 courses")
	assert.Contains(t, rendered, "1 open")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("ABC123")), bytes.Index(out.Bytes(), []byte("DEF456")))
}
