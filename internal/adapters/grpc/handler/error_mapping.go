package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ogurasousui/hotel-pms/internal/core/department"
	"github.com/ogurasousui/hotel-pms/internal/core/employee"
	"github.com/ogurasousui/hotel-pms/internal/core/property"
	"github.com/ogurasousui/hotel-pms/internal/core/shift"
)

func toStatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, employee.ErrInvalidID),
		errors.Is(err, employee.ErrInvalidStatus),
		errors.Is(err, employee.ErrInvalidEmploymentType),
		errors.Is(err, employee.ErrInvalidCertification),
		errors.Is(err, employee.ErrInvalidWeekday),
		errors.Is(err, shift.ErrInvalidID),
		errors.Is(err, shift.ErrInvalidStatus),
		errors.Is(err, shift.ErrInvalidDate),
		errors.Is(err, shift.ErrInvalidClock),
		errors.Is(err, shift.ErrInvalidDateRange),
		errors.Is(err, shift.ErrInvalidTimeRange),
		errors.Is(err, department.ErrInvalidID),
		errors.Is(err, department.ErrInvalidName),
		errors.Is(err, department.ErrInvalidBudget),
		errors.Is(err, property.ErrInvalidID),
		errors.Is(err, property.ErrInvalidName),
		errors.Is(err, property.ErrInvalidRooms),
		errors.Is(err, property.ErrInvalidSettings):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, department.ErrIDAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, shift.ErrShiftNotFound),
		errors.Is(err, department.ErrDepartmentNotFound),
		errors.Is(err, property.ErrPropertyNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, property.ErrLastProperty):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
