package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// 公開するサービス名です。
const (
	StaffServiceName    = "pms.staff.v1.StaffService"
	PropertyServiceName = "pms.property.v1.PropertyService"
)

type unaryCall func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(service, method string, call unaryCall) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv, ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// StaffServiceServer は StaffService のサーバー側インターフェースです。
type StaffServiceServer interface {
	CreateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEmployees(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)

	CreateShift(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetShift(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListShifts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateShift(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteShift(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ShiftsForDate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ShiftsForEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	WeekSchedule(context.Context, *structpb.Struct) (*structpb.Struct, error)

	CreateDepartment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDepartment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListDepartments(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateDepartment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteDepartment(context.Context, *structpb.Struct) (*structpb.Struct, error)

	DepartmentStats(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// PropertyServiceServer は PropertyService のサーバー側インターフェースです。
type PropertyServiceServer interface {
	ListProperties(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateProperty(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateProperty(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteProperty(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CurrentProperty(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SelectProperty(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSettings(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateSettings(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func staffMethod(name string, call func(StaffServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	return unaryMethod(StaffServiceName, name, func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
		return call(srv.(StaffServiceServer), ctx, in)
	})
}

func propertyMethod(name string, call func(PropertyServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	return unaryMethod(PropertyServiceName, name, func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
		return call(srv.(PropertyServiceServer), ctx, in)
	})
}

// StaffServiceDesc は StaffService の grpc.ServiceDesc です。
var StaffServiceDesc = grpc.ServiceDesc{
	ServiceName: StaffServiceName,
	HandlerType: (*StaffServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		staffMethod("CreateEmployee", StaffServiceServer.CreateEmployee),
		staffMethod("GetEmployee", StaffServiceServer.GetEmployee),
		staffMethod("ListEmployees", StaffServiceServer.ListEmployees),
		staffMethod("UpdateEmployee", StaffServiceServer.UpdateEmployee),
		staffMethod("DeleteEmployee", StaffServiceServer.DeleteEmployee),
		staffMethod("CreateShift", StaffServiceServer.CreateShift),
		staffMethod("GetShift", StaffServiceServer.GetShift),
		staffMethod("ListShifts", StaffServiceServer.ListShifts),
		staffMethod("UpdateShift", StaffServiceServer.UpdateShift),
		staffMethod("DeleteShift", StaffServiceServer.DeleteShift),
		staffMethod("ShiftsForDate", StaffServiceServer.ShiftsForDate),
		staffMethod("ShiftsForEmployee", StaffServiceServer.ShiftsForEmployee),
		staffMethod("WeekSchedule", StaffServiceServer.WeekSchedule),
		staffMethod("CreateDepartment", StaffServiceServer.CreateDepartment),
		staffMethod("GetDepartment", StaffServiceServer.GetDepartment),
		staffMethod("ListDepartments", StaffServiceServer.ListDepartments),
		staffMethod("UpdateDepartment", StaffServiceServer.UpdateDepartment),
		staffMethod("DeleteDepartment", StaffServiceServer.DeleteDepartment),
		staffMethod("DepartmentStats", StaffServiceServer.DepartmentStats),
	},
	Streams: []grpc.StreamDesc{},
}

// PropertyServiceDesc は PropertyService の grpc.ServiceDesc です。
var PropertyServiceDesc = grpc.ServiceDesc{
	ServiceName: PropertyServiceName,
	HandlerType: (*PropertyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		propertyMethod("ListProperties", PropertyServiceServer.ListProperties),
		propertyMethod("CreateProperty", PropertyServiceServer.CreateProperty),
		propertyMethod("UpdateProperty", PropertyServiceServer.UpdateProperty),
		propertyMethod("DeleteProperty", PropertyServiceServer.DeleteProperty),
		propertyMethod("CurrentProperty", PropertyServiceServer.CurrentProperty),
		propertyMethod("SelectProperty", PropertyServiceServer.SelectProperty),
		propertyMethod("GetSettings", PropertyServiceServer.GetSettings),
		propertyMethod("UpdateSettings", PropertyServiceServer.UpdateSettings),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterStaffServiceServer は StaffService を登録します。
func RegisterStaffServiceServer(s grpc.ServiceRegistrar, srv StaffServiceServer) {
	s.RegisterService(&StaffServiceDesc, srv)
}

// RegisterPropertyServiceServer は PropertyService を登録します。
func RegisterPropertyServiceServer(s grpc.ServiceRegistrar, srv PropertyServiceServer) {
	s.RegisterService(&PropertyServiceDesc, srv)
}
