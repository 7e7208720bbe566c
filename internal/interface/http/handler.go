package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dealexpress/dealexpress-api/pkg/apperror"
	"github.com/dealexpress/dealexpress-api/pkg/validation"
)

// bindJSON decodes the body into req. On failure it returns a validation
// error carrying per-field details under msg.
func bindJSON(c *gin.Context, req any, msg string) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.Validation(msg).WithDetails(validation.ToDetails(err)).Wrap(err)
	}
	return nil
}

// queryInt parses a query parameter; missing or malformed values read as 0
// so the pagination defaults apply.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

type pageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
