package grpc_server

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/waste3d/courseplatform-api/pkg/learningpb"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/domain"
)

// toStatus переводит ошибки use case в gRPC статус с причиной в ErrorInfo.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return learningpb.Error(codes.NotFound, learningpb.ReasonNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return learningpb.Error(codes.PermissionDenied, learningpb.ReasonUnauthorized, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return learningpb.Error(codes.InvalidArgument, learningpb.ReasonInvalidInput, err.Error())
	case errors.Is(err, domain.ErrTransactionWriteFailed):
		return learningpb.Error(codes.Internal, learningpb.ReasonTransactionWriteFailed, "transaction write failed")
	case errors.Is(err, domain.ErrProgressConflict), errors.Is(err, domain.ErrVersionConflict):
		return learningpb.Error(codes.Aborted, learningpb.ReasonConflict, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return learningpb.Error(codes.Internal, learningpb.ReasonInternal, "internal error")
	}
}
