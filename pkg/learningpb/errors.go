package learningpb

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ErrorDomain = "learning.courseplatform"

// Причины ошибок в errdetails.ErrorInfo.
const (
	ReasonNotFound               = "NOT_FOUND"
	ReasonUnauthorized           = "UNAUTHORIZED"
	ReasonInvalidInput           = "INVALID_INPUT"
	ReasonTransactionWriteFailed = "TRANSACTION_WRITE_FAILED"
	ReasonConflict               = "CONFLICT"
	ReasonInternal               = "INTERNAL"
)

const WarningPartialEnrollment = "partial_enrollment_failure"

func Error(code codes.Code, reason, msg string) error {
	st := status.New(code, msg)
	if detailed, err := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: ErrorDomain}); err == nil {
		st = detailed
	}
	return st.Err()
}

// ReasonOf достаёт причину из статуса, "" если её нет.
func ReasonOf(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			return info.GetReason()
		}
	}
	return ""
}
