package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader    = "X-Request-Id"
	maxRequestIDLen    = 64
	requestIDKey       = "requestId"
	jobIDKey           = "jobId"
	applicationIDKey   = "applicationId"
	stageTransitionKey = "stageTransition"
)

// RequestID tags each request with an id, reusing a well-formed X-Request-Id
// from the caller, and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext fetches the request ID stored by RequestID middleware.
func RequestIDFromContext(c *gin.Context) string {
	return contextString(c, requestIDKey)
}

// TagJob records the job a request touched for the request log.
func TagJob(c *gin.Context, jobID string) {
	if jobID != "" {
		c.Set(jobIDKey, jobID)
	}
}

// TagApplication records the application a request touched for the request log.
func TagApplication(c *gin.Context, applicationID string) {
	if applicationID != "" {
		c.Set(applicationIDKey, applicationID)
	}
}

// TagStageTransition records a "from->to" stage move for the request log.
func TagStageTransition(c *gin.Context, from, to string) {
	c.Set(stageTransitionKey, from+"->"+to)
}

// requestScope is the per-request identity written on every request log line.
func requestScope(c *gin.Context) map[string]any {
	return map[string]any{
		"request_id":       RequestIDFromContext(c),
		"user_id":          UserIDFromContext(c),
		"job_id":           contextString(c, jobIDKey),
		"application_id":   contextString(c, applicationIDKey),
		"stage_transition": contextString(c, stageTransitionKey),
	}
}

// Caller ids end up in log lines, so only short printable tokens are kept.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.' || r == ':':
		default:
			return false
		}
	}
	return true
}
