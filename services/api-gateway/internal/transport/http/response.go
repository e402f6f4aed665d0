package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/waste3d/courseplatform-api/pkg/learningpb"
	"github.com/waste3d/courseplatform-api/services/api-gateway/internal/middleware"
)

// base - общее для всех хендлеров: gRPC клиент и таймаут вызова.
type base struct {
	client  learningpb.LearningServiceClient
	timeout time.Duration
}

func (b base) rpcContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), b.timeout)
}

func callerID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}

func respond(c *gin.Context, httpStatus int, message string, data interface{}) {
	c.JSON(httpStatus, gin.H{"message": message, "data": data})
}

func respondError(c *gin.Context, httpStatus int, code, message string) {
	c.JSON(httpStatus, gin.H{"error": gin.H{"message": message, "code": code}})
}

// respondRPCError переводит gRPC статус learning-service в HTTP ответ.
func respondRPCError(c *gin.Context, err error) {
	st := status.Convert(err)

	switch reason := learningpb.ReasonOf(err); {
	case reason == learningpb.ReasonNotFound || st.Code() == codes.NotFound:
		respondError(c, http.StatusNotFound, "not_found", st.Message())
	case reason == learningpb.ReasonUnauthorized || st.Code() == codes.PermissionDenied:
		respondError(c, http.StatusForbidden, "unauthorized", st.Message())
	case reason == learningpb.ReasonInvalidInput || st.Code() == codes.InvalidArgument:
		respondError(c, http.StatusBadRequest, "invalid_input", st.Message())
	case reason == learningpb.ReasonTransactionWriteFailed:
		respondError(c, http.StatusInternalServerError, "transaction_write_failed", "Failed to record the payment transaction")
	case reason == learningpb.ReasonConflict || st.Code() == codes.Aborted:
		respondError(c, http.StatusConflict, "conflict", st.Message())
	case st.Code() == codes.DeadlineExceeded:
		respondError(c, http.StatusGatewayTimeout, "timeout", "Upstream timeout")
	case st.Code() == codes.Unavailable:
		respondError(c, http.StatusServiceUnavailable, "unavailable", "Learning service unavailable")
	default:
		respondError(c, http.StatusInternalServerError, "internal", "Internal server error")
	}
}
