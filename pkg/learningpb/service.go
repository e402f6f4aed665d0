package learningpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "learning.v1.LearningService"

const (
	LearningService_GetCourse_FullMethodName          = "/learning.v1.LearningService/GetCourse"
	LearningService_ListCourses_FullMethodName        = "/learning.v1.LearningService/ListCourses"
	LearningService_AttachChapterVideo_FullMethodName = "/learning.v1.LearningService/AttachChapterVideo"
	LearningService_GetProgress_FullMethodName        = "/learning.v1.LearningService/GetProgress"
	LearningService_UpdateProgress_FullMethodName     = "/learning.v1.LearningService/UpdateProgress"
	LearningService_GetEnrolledCourses_FullMethodName = "/learning.v1.LearningService/GetEnrolledCourses"
	LearningService_RecordPurchase_FullMethodName     = "/learning.v1.LearningService/RecordPurchase"
	LearningService_ResumeEnrollment_FullMethodName   = "/learning.v1.LearningService/ResumeEnrollment"
	LearningService_ListTransactions_FullMethodName   = "/learning.v1.LearningService/ListTransactions"
)

type LearningServiceClient interface {
	GetCourse(ctx context.Context, in *GetCourseRequest, opts ...grpc.CallOption) (*CourseResponse, error)
	ListCourses(ctx context.Context, in *ListCoursesRequest, opts ...grpc.CallOption) (*ListCoursesResponse, error)
	AttachChapterVideo(ctx context.Context, in *AttachChapterVideoRequest, opts ...grpc.CallOption) (*CourseResponse, error)
	GetProgress(ctx context.Context, in *GetProgressRequest, opts ...grpc.CallOption) (*ProgressResponse, error)
	UpdateProgress(ctx context.Context, in *UpdateProgressRequest, opts ...grpc.CallOption) (*ProgressResponse, error)
	GetEnrolledCourses(ctx context.Context, in *GetEnrolledCoursesRequest, opts ...grpc.CallOption) (*ListCoursesResponse, error)
	RecordPurchase(ctx context.Context, in *RecordPurchaseRequest, opts ...grpc.CallOption) (*PurchaseResponse, error)
	ResumeEnrollment(ctx context.Context, in *ResumeEnrollmentRequest, opts ...grpc.CallOption) (*PurchaseResponse, error)
	ListTransactions(ctx context.Context, in *ListTransactionsRequest, opts ...grpc.CallOption) (*ListTransactionsResponse, error)
}

type learningServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLearningServiceClient(cc grpc.ClientConnInterface) LearningServiceClient {
	return &learningServiceClient{cc}
}

func (c *learningServiceClient) GetCourse(ctx context.Context, in *GetCourseRequest, opts ...grpc.CallOption) (*CourseResponse, error) {
	return invoke[GetCourseRequest, CourseResponse](ctx, c.cc, LearningService_GetCourse_FullMethodName, in, opts...)
}

func (c *learningServiceClient) ListCourses(ctx context.Context, in *ListCoursesRequest, opts ...grpc.CallOption) (*ListCoursesResponse, error) {
	return invoke[ListCoursesRequest, ListCoursesResponse](ctx, c.cc, LearningService_ListCourses_FullMethodName, in, opts...)
}

func (c *learningServiceClient) AttachChapterVideo(ctx context.Context, in *AttachChapterVideoRequest, opts ...grpc.CallOption) (*CourseResponse, error) {
	return invoke[AttachChapterVideoRequest, CourseResponse](ctx, c.cc, LearningService_AttachChapterVideo_FullMethodName, in, opts...)
}

func (c *learningServiceClient) GetProgress(ctx context.Context, in *GetProgressRequest, opts ...grpc.CallOption) (*ProgressResponse, error) {
	return invoke[GetProgressRequest, ProgressResponse](ctx, c.cc, LearningService_GetProgress_FullMethodName, in, opts...)
}

func (c *learningServiceClient) UpdateProgress(ctx context.Context, in *UpdateProgressRequest, opts ...grpc.CallOption) (*ProgressResponse, error) {
	return invoke[UpdateProgressRequest, ProgressResponse](ctx, c.cc, LearningService_UpdateProgress_FullMethodName, in, opts...)
}

func (c *learningServiceClient) GetEnrolledCourses(ctx context.Context, in *GetEnrolledCoursesRequest, opts ...grpc.CallOption) (*ListCoursesResponse, error) {
	return invoke[GetEnrolledCoursesRequest, ListCoursesResponse](ctx, c.cc, LearningService_GetEnrolledCourses_FullMethodName, in, opts...)
}

func (c *learningServiceClient) RecordPurchase(ctx context.Context, in *RecordPurchaseRequest, opts ...grpc.CallOption) (*PurchaseResponse, error) {
	return invoke[RecordPurchaseRequest, PurchaseResponse](ctx, c.cc, LearningService_RecordPurchase_FullMethodName, in, opts...)
}

func (c *learningServiceClient) ResumeEnrollment(ctx context.Context, in *ResumeEnrollmentRequest, opts ...grpc.CallOption) (*PurchaseResponse, error) {
	return invoke[ResumeEnrollmentRequest, PurchaseResponse](ctx, c.cc, LearningService_ResumeEnrollment_FullMethodName, in, opts...)
}

func (c *learningServiceClient) ListTransactions(ctx context.Context, in *ListTransactionsRequest, opts ...grpc.CallOption) (*ListTransactionsResponse, error) {
	return invoke[ListTransactionsRequest, ListTransactionsResponse](ctx, c.cc, LearningService_ListTransactions_FullMethodName, in, opts...)
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts ...grpc.CallOption) (*Resp, error) {
	msg, err := Encode(in)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode %s: %v", method, err)
	}
	out := new(structpb.Struct)
	if err := cc.Invoke(ctx, method, msg, out, opts...); err != nil {
		return nil, err
	}
	resp := new(Resp)
	if err := Decode(out, resp); err != nil {
		return nil, status.Errorf(codes.Internal, "decode %s: %v", method, err)
	}
	return resp, nil
}

type LearningServiceServer interface {
	GetCourse(context.Context, *GetCourseRequest) (*CourseResponse, error)
	ListCourses(context.Context, *ListCoursesRequest) (*ListCoursesResponse, error)
	AttachChapterVideo(context.Context, *AttachChapterVideoRequest) (*CourseResponse, error)
	GetProgress(context.Context, *GetProgressRequest) (*ProgressResponse, error)
	UpdateProgress(context.Context, *UpdateProgressRequest) (*ProgressResponse, error)
	GetEnrolledCourses(context.Context, *GetEnrolledCoursesRequest) (*ListCoursesResponse, error)
	RecordPurchase(context.Context, *RecordPurchaseRequest) (*PurchaseResponse, error)
	ResumeEnrollment(context.Context, *ResumeEnrollmentRequest) (*PurchaseResponse, error)
	ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error)
	mustEmbedUnimplementedLearningServiceServer()
}

type UnimplementedLearningServiceServer struct{}

func (UnimplementedLearningServiceServer) GetCourse(context.Context, *GetCourseRequest) (*CourseResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCourse not implemented")
}
func (UnimplementedLearningServiceServer) ListCourses(context.Context, *ListCoursesRequest) (*ListCoursesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCourses not implemented")
}
func (UnimplementedLearningServiceServer) AttachChapterVideo(context.Context, *AttachChapterVideoRequest) (*CourseResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AttachChapterVideo not implemented")
}
func (UnimplementedLearningServiceServer) GetProgress(context.Context, *GetProgressRequest) (*ProgressResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProgress not implemented")
}
func (UnimplementedLearningServiceServer) UpdateProgress(context.Context, *UpdateProgressRequest) (*ProgressResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateProgress not implemented")
}
func (UnimplementedLearningServiceServer) GetEnrolledCourses(context.Context, *GetEnrolledCoursesRequest) (*ListCoursesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetEnrolledCourses not implemented")
}
func (UnimplementedLearningServiceServer) RecordPurchase(context.Context, *RecordPurchaseRequest) (*PurchaseResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RecordPurchase not implemented")
}
func (UnimplementedLearningServiceServer) ResumeEnrollment(context.Context, *ResumeEnrollmentRequest) (*PurchaseResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ResumeEnrollment not implemented")
}
func (UnimplementedLearningServiceServer) ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTransactions not implemented")
}
func (UnimplementedLearningServiceServer) mustEmbedUnimplementedLearningServiceServer() {}

func RegisterLearningServiceServer(s grpc.ServiceRegistrar, srv LearningServiceServer) {
	s.RegisterService(&LearningService_ServiceDesc, srv)
}

// unaryHandler раскодирует Struct в Req, вызывает метод сервера и кодирует ответ обратно.
// Интерсепторы получают уже раскодированный *Req.
func unaryHandler[Req, Resp any](method string, call func(LearningServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		req := new(Req)
		if err := Decode(in, req); err != nil {
			return nil, Error(codes.InvalidArgument, ReasonInvalidInput, "malformed request: "+err.Error())
		}
		handler := func(ctx context.Context, r any) (any, error) {
			resp, err := call(srv.(LearningServiceServer), ctx, r.(*Req))
			if err != nil {
				return nil, err
			}
			out, err := Encode(resp)
			if err != nil {
				return nil, status.Errorf(codes.Internal, "encode %s: %v", method, err)
			}
			return out, nil
		}
		if interceptor == nil {
			return handler(ctx, req)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		return interceptor(ctx, req, info, handler)
	}
}

var LearningService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LearningServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetCourse", Handler: unaryHandler(LearningService_GetCourse_FullMethodName, LearningServiceServer.GetCourse)},
		{MethodName: "ListCourses", Handler: unaryHandler(LearningService_ListCourses_FullMethodName, LearningServiceServer.ListCourses)},
		{MethodName: "AttachChapterVideo", Handler: unaryHandler(LearningService_AttachChapterVideo_FullMethodName, LearningServiceServer.AttachChapterVideo)},
		{MethodName: "GetProgress", Handler: unaryHandler(LearningService_GetProgress_FullMethodName, LearningServiceServer.GetProgress)},
		{MethodName: "UpdateProgress", Handler: unaryHandler(LearningService_UpdateProgress_FullMethodName, LearningServiceServer.UpdateProgress)},
		{MethodName: "GetEnrolledCourses", Handler: unaryHandler(LearningService_GetEnrolledCourses_FullMethodName, LearningServiceServer.GetEnrolledCourses)},
		{MethodName: "RecordPurchase", Handler: unaryHandler(LearningService_RecordPurchase_FullMethodName, LearningServiceServer.RecordPurchase)},
		{MethodName: "ResumeEnrollment", Handler: unaryHandler(LearningService_ResumeEnrollment_FullMethodName, LearningServiceServer.ResumeEnrollment)},
		{MethodName: "ListTransactions", Handler: unaryHandler(LearningService_ListTransactions_FullMethodName, LearningServiceServer.ListTransactions)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "learning/v1/learning.proto",
}
