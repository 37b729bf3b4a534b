package pkg

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseIDParam extracts and validates the "id" URL parameter.
func ParseIDParam(c *gin.Context) (uint, error) {
	return parseUintParam(c, "id")
}

// ParseUintParam extracts and validates a named positive integer URL parameter.
func ParseUintParam(c *gin.Context, name string) (uint, error) {
	return parseUintParam(c, name)
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid %s: %s", name, raw)
	}
	if v > uint64(^uint(0)) {
		return 0, fmt.Errorf("invalid %s: %s", name, raw)
	}
	return uint(v), nil
}
