package handler

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/accounts-server/internal/model"
)

const invalidLoginMessage = "Invalid login attempt!"

func handleError(err error) error {
	var validationErr *model.ValidationError
	var registrationErr *model.RegistrationError
	var mutationErr *model.ClaimMutationError

	switch {
	case errors.As(err, &validationErr):
		return withViolations(codes.InvalidArgument, validationErr.Error(),
			validationErr.Field, []string{validationErr.Reason})
	case errors.As(err, &registrationErr):
		return withViolations(codes.InvalidArgument, model.ErrRegistrationFailed.Error(),
			"credentials", registrationErr.Reasons)
	case errors.As(err, &mutationErr):
		return withViolations(codes.InvalidArgument, model.ErrClaimMutationFailed.Error(),
			"user_id", mutationErr.Reasons)
	case errors.Is(err, model.ErrAuthenticationFailed):
		return status.Error(codes.InvalidArgument, invalidLoginMessage)
	case errors.Is(err, model.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, model.ErrForbidden):
		return status.Error(codes.PermissionDenied, model.ErrForbidden.Error())
	case errors.Is(err, model.ErrUserNotFound):
		return status.Error(codes.NotFound, model.ErrUserNotFound.Error())
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}

// withViolations builds a status whose details list each reason as a field violation.
func withViolations(code codes.Code, msg, field string, reasons []string) error {
	st := status.New(code, msg)

	violations := make([]*errdetails.BadRequest_FieldViolation, 0, len(reasons))
	for _, reason := range reasons {
		violations = append(violations, &errdetails.BadRequest_FieldViolation{
			Field:       field,
			Description: reason,
		})
	}

	detailed, err := st.WithDetails(&errdetails.BadRequest{FieldViolations: violations})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}
