package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/irwhub/employee-contract-app/internal/apperr"
	"github.com/irwhub/employee-contract-app/internal/docsync"
	"github.com/irwhub/employee-contract-app/internal/middleware"
)

// respondError renders a failure exactly once at the request boundary.
// Server-side failures are logged with the full chain before the
// response goes out.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// currentCaller pulls the authenticated employee out of the context in
// the shape the pipeline wants.
func currentCaller(c *gin.Context) (docsync.Caller, bool) {
	emp, ok := middleware.CurrentEmployee(c)
	if !ok {
		return docsync.Caller{}, false
	}
	return docsync.Caller{ID: emp.ID, Name: emp.Name, Role: emp.Role}, true
}

// idParam parses the numeric :id path parameter.
func idParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.Validationf("invalid id: %q", c.Param("id"))
	}
	return uint(id), nil
}
