package testutil

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewTestUUID_Deterministic(t *testing.T) {
	a := NewTestUUID("seed")
	b := NewTestUUID("seed")
	c := NewTestUUID("other")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestDoJSONRequest(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var payload map[string]string
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, payload)
	})

	w := DoJSONRequest(t, engine, http.MethodPost, "/echo", map[string]string{"name": "Acme"}, AuthHeader("tok"))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	DecodeResponse(t, w, &resp)
	assert.Equal(t, "Acme", resp["name"])
}
