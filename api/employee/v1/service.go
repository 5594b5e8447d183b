package v1

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "employee.v1.EmployeeService"

const (
	GetAllEmployeesFullMethod = "/" + ServiceName + "/GetAllEmployees"
	GetEmployeeFullMethod     = "/" + ServiceName + "/GetEmployee"
	AddEmployeeFullMethod     = "/" + ServiceName + "/AddEmployee"
	UpdateEmployeeFullMethod  = "/" + ServiceName + "/UpdateEmployee"
	DeleteEmployeeFullMethod  = "/" + ServiceName + "/DeleteEmployee"
)

// EmployeeServiceServer is the server API for the employee service.
type EmployeeServiceServer interface {
	GetAllEmployees(context.Context, *GetAllEmployeesRequest) (*GetAllEmployeesResponse, error)
	GetEmployee(context.Context, *GetEmployeeRequest) (*GetEmployeeResponse, error)
	AddEmployee(context.Context, *AddEmployeeRequest) (*AddEmployeeResponse, error)
	UpdateEmployee(context.Context, *UpdateEmployeeRequest) (*UpdateEmployeeResponse, error)
	DeleteEmployee(context.Context, *DeleteEmployeeRequest) (*DeleteEmployeeResponse, error)
}

// RegisterEmployeeServiceServer attaches srv to the gRPC registrar.
func RegisterEmployeeServiceServer(s grpc.ServiceRegistrar, srv EmployeeServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes the employee service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EmployeeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetAllEmployees",
			Handler:    unaryHandler(GetAllEmployeesFullMethod, EmployeeServiceServer.GetAllEmployees),
		},
		{
			MethodName: "GetEmployee",
			Handler:    unaryHandler(GetEmployeeFullMethod, EmployeeServiceServer.GetEmployee),
		},
		{
			MethodName: "AddEmployee",
			Handler:    unaryHandler(AddEmployeeFullMethod, EmployeeServiceServer.AddEmployee),
		},
		{
			MethodName: "UpdateEmployee",
			Handler:    unaryHandler(UpdateEmployeeFullMethod, EmployeeServiceServer.UpdateEmployee),
		},
		{
			MethodName: "DeleteEmployee",
			Handler:    unaryHandler(DeleteEmployeeFullMethod, EmployeeServiceServer.DeleteEmployee),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "employee/v1/employee.api",
}

func unaryHandler[Req, Resp any](
	fullMethod string,
	call func(EmployeeServiceServer, context.Context, *Req) (*Resp, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(EmployeeServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(EmployeeServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// EmployeeServiceClient is a typed client that always speaks the JSON codec.
type EmployeeServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewEmployeeServiceClient(cc grpc.ClientConnInterface) *EmployeeServiceClient {
	return &EmployeeServiceClient{cc: cc}
}

func (c *EmployeeServiceClient) GetAllEmployees(ctx context.Context, in *GetAllEmployeesRequest, opts ...grpc.CallOption) (*GetAllEmployeesResponse, error) {
	out := new(GetAllEmployeesResponse)
	if err := c.invoke(ctx, GetAllEmployeesFullMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *EmployeeServiceClient) GetEmployee(ctx context.Context, in *GetEmployeeRequest, opts ...grpc.CallOption) (*GetEmployeeResponse, error) {
	out := new(GetEmployeeResponse)
	if err := c.invoke(ctx, GetEmployeeFullMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *EmployeeServiceClient) AddEmployee(ctx context.Context, in *AddEmployeeRequest, opts ...grpc.CallOption) (*AddEmployeeResponse, error) {
	out := new(AddEmployeeResponse)
	if err := c.invoke(ctx, AddEmployeeFullMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *EmployeeServiceClient) UpdateEmployee(ctx context.Context, in *UpdateEmployeeRequest, opts ...grpc.CallOption) (*UpdateEmployeeResponse, error) {
	out := new(UpdateEmployeeResponse)
	if err := c.invoke(ctx, UpdateEmployeeFullMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *EmployeeServiceClient) DeleteEmployee(ctx context.Context, in *DeleteEmployeeRequest, opts ...grpc.CallOption) (*DeleteEmployeeResponse, error) {
	out := new(DeleteEmployeeResponse)
	if err := c.invoke(ctx, DeleteEmployeeFullMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *EmployeeServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}
