package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketpos/pkg/api"
)

// MemberServiceName is the fully-qualified name of the MemberService service.
const MemberServiceName = "pos.v1.MemberService"

// These constants are the fully-qualified names of the RPCs defined in this package. They're
// exposed at runtime as Spec.Procedure and as the final two segments of the HTTP route.
const (
	MemberServiceListMembersProcedure            = "/pos.v1.MemberService/ListMembers"
	MemberServiceSaveMemberProcedure             = "/pos.v1.MemberService/SaveMember"
	MemberServiceDeleteMemberProcedure           = "/pos.v1.MemberService/DeleteMember"
	MemberServiceListMembershipsProcedure        = "/pos.v1.MemberService/ListMemberships"
	MemberServiceSaveMembershipProcedure         = "/pos.v1.MemberService/SaveMembership"
	MemberServiceDeleteMembershipProcedure       = "/pos.v1.MemberService/DeleteMembership"
	MemberServiceListMemberMembershipsProcedure  = "/pos.v1.MemberService/ListMemberMemberships"
	MemberServiceAssignMembershipProcedure       = "/pos.v1.MemberService/AssignMembership"
	MemberServiceDeleteMemberMembershipProcedure = "/pos.v1.MemberService/DeleteMemberMembership"
	MemberServiceCheckInProcedure                = "/pos.v1.MemberService/CheckIn"
	MemberServiceDeleteCheckInProcedure          = "/pos.v1.MemberService/DeleteCheckIn"
	MemberServiceListCheckInsTodayProcedure      = "/pos.v1.MemberService/ListCheckInsToday"
)

// MemberServiceHandler manages members, membership plans, entitlements and check-ins.
type MemberServiceHandler interface {
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	SaveMember(context.Context, *connect.Request[api.SaveMemberRequest]) (*connect.Response[api.SaveMemberResponse], error)
	DeleteMember(context.Context, *connect.Request[api.DeleteMemberRequest]) (*connect.Response[api.DeleteMemberResponse], error)
	ListMemberships(context.Context, *connect.Request[api.ListMembershipsRequest]) (*connect.Response[api.ListMembershipsResponse], error)
	SaveMembership(context.Context, *connect.Request[api.SaveMembershipRequest]) (*connect.Response[api.SaveMembershipResponse], error)
	DeleteMembership(context.Context, *connect.Request[api.DeleteMembershipRequest]) (*connect.Response[api.DeleteMembershipResponse], error)
	ListMemberMemberships(context.Context, *connect.Request[api.ListMemberMembershipsRequest]) (*connect.Response[api.ListMemberMembershipsResponse], error)
	AssignMembership(context.Context, *connect.Request[api.AssignMembershipRequest]) (*connect.Response[api.AssignMembershipResponse], error)
	DeleteMemberMembership(context.Context, *connect.Request[api.DeleteMemberMembershipRequest]) (*connect.Response[api.DeleteMemberMembershipResponse], error)
	CheckIn(context.Context, *connect.Request[api.CheckInRequest]) (*connect.Response[api.CheckInResponse], error)
	DeleteCheckIn(context.Context, *connect.Request[api.DeleteCheckInRequest]) (*connect.Response[api.DeleteCheckInResponse], error)
	ListCheckInsToday(context.Context, *connect.Request[api.ListCheckInsTodayRequest]) (*connect.Response[api.ListCheckInsTodayResponse], error)
}

// NewMemberServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
func NewMemberServiceHandler(svc MemberServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithCodec()}, opts...)
	listMembersHandler := connect.NewUnaryHandler(MemberServiceListMembersProcedure, svc.ListMembers, opts...)
	saveMemberHandler := connect.NewUnaryHandler(MemberServiceSaveMemberProcedure, svc.SaveMember, opts...)
	deleteMemberHandler := connect.NewUnaryHandler(MemberServiceDeleteMemberProcedure, svc.DeleteMember, opts...)
	listMembershipsHandler := connect.NewUnaryHandler(MemberServiceListMembershipsProcedure, svc.ListMemberships, opts...)
	saveMembershipHandler := connect.NewUnaryHandler(MemberServiceSaveMembershipProcedure, svc.SaveMembership, opts...)
	deleteMembershipHandler := connect.NewUnaryHandler(MemberServiceDeleteMembershipProcedure, svc.DeleteMembership, opts...)
	listMemberMembershipsHandler := connect.NewUnaryHandler(MemberServiceListMemberMembershipsProcedure, svc.ListMemberMemberships, opts...)
	assignMembershipHandler := connect.NewUnaryHandler(MemberServiceAssignMembershipProcedure, svc.AssignMembership, opts...)
	deleteMemberMembershipHandler := connect.NewUnaryHandler(MemberServiceDeleteMemberMembershipProcedure, svc.DeleteMemberMembership, opts...)
	checkInHandler := connect.NewUnaryHandler(MemberServiceCheckInProcedure, svc.CheckIn, opts...)
	deleteCheckInHandler := connect.NewUnaryHandler(MemberServiceDeleteCheckInProcedure, svc.DeleteCheckIn, opts...)
	listCheckInsTodayHandler := connect.NewUnaryHandler(MemberServiceListCheckInsTodayProcedure, svc.ListCheckInsToday, opts...)
	return "/" + MemberServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case MemberServiceListMembersProcedure:
			listMembersHandler.ServeHTTP(w, r)
		case MemberServiceSaveMemberProcedure:
			saveMemberHandler.ServeHTTP(w, r)
		case MemberServiceDeleteMemberProcedure:
			deleteMemberHandler.ServeHTTP(w, r)
		case MemberServiceListMembershipsProcedure:
			listMembershipsHandler.ServeHTTP(w, r)
		case MemberServiceSaveMembershipProcedure:
			saveMembershipHandler.ServeHTTP(w, r)
		case MemberServiceDeleteMembershipProcedure:
			deleteMembershipHandler.ServeHTTP(w, r)
		case MemberServiceListMemberMembershipsProcedure:
			listMemberMembershipsHandler.ServeHTTP(w, r)
		case MemberServiceAssignMembershipProcedure:
			assignMembershipHandler.ServeHTTP(w, r)
		case MemberServiceDeleteMemberMembershipProcedure:
			deleteMemberMembershipHandler.ServeHTTP(w, r)
		case MemberServiceCheckInProcedure:
			checkInHandler.ServeHTTP(w, r)
		case MemberServiceDeleteCheckInProcedure:
			deleteCheckInHandler.ServeHTTP(w, r)
		case MemberServiceListCheckInsTodayProcedure:
			listCheckInsTodayHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// MemberServiceClient is a client for the pos.v1.MemberService service.
type MemberServiceClient interface {
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	SaveMember(context.Context, *connect.Request[api.SaveMemberRequest]) (*connect.Response[api.SaveMemberResponse], error)
	DeleteMember(context.Context, *connect.Request[api.DeleteMemberRequest]) (*connect.Response[api.DeleteMemberResponse], error)
	ListMemberships(context.Context, *connect.Request[api.ListMembershipsRequest]) (*connect.Response[api.ListMembershipsResponse], error)
	SaveMembership(context.Context, *connect.Request[api.SaveMembershipRequest]) (*connect.Response[api.SaveMembershipResponse], error)
	DeleteMembership(context.Context, *connect.Request[api.DeleteMembershipRequest]) (*connect.Response[api.DeleteMembershipResponse], error)
	ListMemberMemberships(context.Context, *connect.Request[api.ListMemberMembershipsRequest]) (*connect.Response[api.ListMemberMembershipsResponse], error)
	AssignMembership(context.Context, *connect.Request[api.AssignMembershipRequest]) (*connect.Response[api.AssignMembershipResponse], error)
	DeleteMemberMembership(context.Context, *connect.Request[api.DeleteMemberMembershipRequest]) (*connect.Response[api.DeleteMemberMembershipResponse], error)
	CheckIn(context.Context, *connect.Request[api.CheckInRequest]) (*connect.Response[api.CheckInResponse], error)
	DeleteCheckIn(context.Context, *connect.Request[api.DeleteCheckInRequest]) (*connect.Response[api.DeleteCheckInResponse], error)
	ListCheckInsToday(context.Context, *connect.Request[api.ListCheckInsTodayRequest]) (*connect.Response[api.ListCheckInsTodayResponse], error)
}

// NewMemberServiceClient constructs a client for the pos.v1.MemberService service.
// baseURL is the scheme, host and optional path prefix of the server, e.g. http://localhost:8080.
func NewMemberServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) MemberServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{api.WithCodec()}, opts...)
	return &memberServiceClient{
		listMembers: connect.NewClient[api.ListMembersRequest, api.ListMembersResponse](
			httpClient,
			baseURL+MemberServiceListMembersProcedure,
			opts...,
		),
		saveMember: connect.NewClient[api.SaveMemberRequest, api.SaveMemberResponse](
			httpClient,
			baseURL+MemberServiceSaveMemberProcedure,
			opts...,
		),
		deleteMember: connect.NewClient[api.DeleteMemberRequest, api.DeleteMemberResponse](
			httpClient,
			baseURL+MemberServiceDeleteMemberProcedure,
			opts...,
		),
		listMemberships: connect.NewClient[api.ListMembershipsRequest, api.ListMembershipsResponse](
			httpClient,
			baseURL+MemberServiceListMembershipsProcedure,
			opts...,
		),
		saveMembership: connect.NewClient[api.SaveMembershipRequest, api.SaveMembershipResponse](
			httpClient,
			baseURL+MemberServiceSaveMembershipProcedure,
			opts...,
		),
		deleteMembership: connect.NewClient[api.DeleteMembershipRequest, api.DeleteMembershipResponse](
			httpClient,
			baseURL+MemberServiceDeleteMembershipProcedure,
			opts...,
		),
		listMemberMemberships: connect.NewClient[api.ListMemberMembershipsRequest, api.ListMemberMembershipsResponse](
			httpClient,
			baseURL+MemberServiceListMemberMembershipsProcedure,
			opts...,
		),
		assignMembership: connect.NewClient[api.AssignMembershipRequest, api.AssignMembershipResponse](
			httpClient,
			baseURL+MemberServiceAssignMembershipProcedure,
			opts...,
		),
		deleteMemberMembership: connect.NewClient[api.DeleteMemberMembershipRequest, api.DeleteMemberMembershipResponse](
			httpClient,
			baseURL+MemberServiceDeleteMemberMembershipProcedure,
			opts...,
		),
		checkIn: connect.NewClient[api.CheckInRequest, api.CheckInResponse](
			httpClient,
			baseURL+MemberServiceCheckInProcedure,
			opts...,
		),
		deleteCheckIn: connect.NewClient[api.DeleteCheckInRequest, api.DeleteCheckInResponse](
			httpClient,
			baseURL+MemberServiceDeleteCheckInProcedure,
			opts...,
		),
		listCheckInsToday: connect.NewClient[api.ListCheckInsTodayRequest, api.ListCheckInsTodayResponse](
			httpClient,
			baseURL+MemberServiceListCheckInsTodayProcedure,
			opts...,
		),
	}
}

type memberServiceClient struct {
	listMembers            *connect.Client[api.ListMembersRequest, api.ListMembersResponse]
	saveMember             *connect.Client[api.SaveMemberRequest, api.SaveMemberResponse]
	deleteMember           *connect.Client[api.DeleteMemberRequest, api.DeleteMemberResponse]
	listMemberships        *connect.Client[api.ListMembershipsRequest, api.ListMembershipsResponse]
	saveMembership         *connect.Client[api.SaveMembershipRequest, api.SaveMembershipResponse]
	deleteMembership       *connect.Client[api.DeleteMembershipRequest, api.DeleteMembershipResponse]
	listMemberMemberships  *connect.Client[api.ListMemberMembershipsRequest, api.ListMemberMembershipsResponse]
	assignMembership       *connect.Client[api.AssignMembershipRequest, api.AssignMembershipResponse]
	deleteMemberMembership *connect.Client[api.DeleteMemberMembershipRequest, api.DeleteMemberMembershipResponse]
	checkIn                *connect.Client[api.CheckInRequest, api.CheckInResponse]
	deleteCheckIn          *connect.Client[api.DeleteCheckInRequest, api.DeleteCheckInResponse]
	listCheckInsToday      *connect.Client[api.ListCheckInsTodayRequest, api.ListCheckInsTodayResponse]
}

func (c *memberServiceClient) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *memberServiceClient) SaveMember(ctx context.Context, req *connect.Request[api.SaveMemberRequest]) (*connect.Response[api.SaveMemberResponse], error) {
	return c.saveMember.CallUnary(ctx, req)
}

func (c *memberServiceClient) DeleteMember(ctx context.Context, req *connect.Request[api.DeleteMemberRequest]) (*connect.Response[api.DeleteMemberResponse], error) {
	return c.deleteMember.CallUnary(ctx, req)
}

func (c *memberServiceClient) ListMemberships(ctx context.Context, req *connect.Request[api.ListMembershipsRequest]) (*connect.Response[api.ListMembershipsResponse], error) {
	return c.listMemberships.CallUnary(ctx, req)
}

func (c *memberServiceClient) SaveMembership(ctx context.Context, req *connect.Request[api.SaveMembershipRequest]) (*connect.Response[api.SaveMembershipResponse], error) {
	return c.saveMembership.CallUnary(ctx, req)
}

func (c *memberServiceClient) DeleteMembership(ctx context.Context, req *connect.Request[api.DeleteMembershipRequest]) (*connect.Response[api.DeleteMembershipResponse], error) {
	return c.deleteMembership.CallUnary(ctx, req)
}

func (c *memberServiceClient) ListMemberMemberships(ctx context.Context, req *connect.Request[api.ListMemberMembershipsRequest]) (*connect.Response[api.ListMemberMembershipsResponse], error) {
	return c.listMemberMemberships.CallUnary(ctx, req)
}

func (c *memberServiceClient) AssignMembership(ctx context.Context, req *connect.Request[api.AssignMembershipRequest]) (*connect.Response[api.AssignMembershipResponse], error) {
	return c.assignMembership.CallUnary(ctx, req)
}

func (c *memberServiceClient) DeleteMemberMembership(ctx context.Context, req *connect.Request[api.DeleteMemberMembershipRequest]) (*connect.Response[api.DeleteMemberMembershipResponse], error) {
	return c.deleteMemberMembership.CallUnary(ctx, req)
}

func (c *memberServiceClient) CheckIn(ctx context.Context, req *connect.Request[api.CheckInRequest]) (*connect.Response[api.CheckInResponse], error) {
	return c.checkIn.CallUnary(ctx, req)
}

func (c *memberServiceClient) DeleteCheckIn(ctx context.Context, req *connect.Request[api.DeleteCheckInRequest]) (*connect.Response[api.DeleteCheckInResponse], error) {
	return c.deleteCheckIn.CallUnary(ctx, req)
}

func (c *memberServiceClient) ListCheckInsToday(ctx context.Context, req *connect.Request[api.ListCheckInsTodayRequest]) (*connect.Response[api.ListCheckInsTodayResponse], error) {
	return c.listCheckInsToday.CallUnary(ctx, req)
}
