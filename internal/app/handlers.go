package app

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kegliz/synthesis/internal/qservice"
	"github.com/kegliz/synthesis/qc/dispatch"
)

var badRequestErrorMsg = "Bad Request - please contact the administrator"
var internalServerErrorMsg = "Internal Server Error - please contact the administrator"

// HealthHandler is the handler for the /health endpoint
func (a *appServer) HealthHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving health endpoint")
	c.String(http.StatusOK, "OK")
}

// Dispatch is the handler for the /api/dispatch endpoint: one
// (agent, action, kwargs) call, routed through the orchestrator.
func (a *appServer) Dispatch(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}

	var req dispatch.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding dispatch request failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": badRequestErrorMsg})
		return
	}

	l.Debug().Str("agent", req.Agent).Str("action", req.Action).Msg("dispatching")
	c.JSON(http.StatusOK, a.orchestrator.Dispatch(req))
}

// MultiDispatchRequest is the /api/dispatch/multi request envelope.
type MultiDispatchRequest struct {
	Calls []dispatch.Request `json:"calls"`
}

// DispatchMulti is the handler for the /api/dispatch/multi endpoint: a
// batch of (agent, action, kwargs) calls, fanned out across the
// orchestrator's bounded worker pool.
func (a *appServer) DispatchMulti(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}

	var req MultiDispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding multi-dispatch request failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": badRequestErrorMsg})
		return
	}

	l.Debug().Int("calls", len(req.Calls)).Msg("multi-dispatching")
	c.JSON(http.StatusOK, a.orchestrator.MultiDispatch(req.Calls))
}

// SaveProgram is the handler for the /api/programs endpoint.
func (a *appServer) SaveProgram(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}

	var pv qservice.ProgramValue
	if err := c.ShouldBindJSON(&pv.Program); err != nil {
		l.Error().Err(err).Msg("binding program failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": badRequestErrorMsg})
		return
	}

	id, err := a.qs.SaveProgram(l, &pv)
	if err != nil {
		l.Error().Err(err).Msg("saving program failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalServerErrorMsg})
		return
	}
	c.JSON(http.StatusOK, qservice.ProgramIDValue{ID: id})
}

// RunProgram is the handler for the /api/programs/:id/run endpoint.
// Shots is read from the "shots" query parameter, defaulting to 1000.
func (a *appServer) RunProgram(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}

	id := c.Param("id")
	shots := 1000
	if q := c.Query("shots"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			shots = n
		}
	}

	result, err := a.qs.RunProgram(l, id, shots)
	if err != nil {
		l.Error().Err(err).Str("id", id).Msg("running program failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalServerErrorMsg})
		return
	}
	c.JSON(http.StatusOK, result)
}
