package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"wa-directory/domain"
	"wa-directory/errors"
	"wa-directory/services"

	"github.com/samber/lo"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "directory.v1.DirectoryService"

// IDirectoryServer is the server side of the directory service. Every method
// takes and returns a google.protobuf.Struct.
type IDirectoryServer interface {
	OnWhatsApp(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	UpdatePresence(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	RequestPresenceUpdate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetStatus(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	SetStatus(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	UpdateProfileName(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	UpdateProfilePicture(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetContacts(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetStories(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetChats(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	LoadChats(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetBroadcastListInfo(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	BlockUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetBlocklist(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetBusinessProfile(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

var DirectoryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IDirectoryServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("OnWhatsApp", IDirectoryServer.OnWhatsApp),
		unary("UpdatePresence", IDirectoryServer.UpdatePresence),
		unary("RequestPresenceUpdate", IDirectoryServer.RequestPresenceUpdate),
		unary("GetStatus", IDirectoryServer.GetStatus),
		unary("SetStatus", IDirectoryServer.SetStatus),
		unary("UpdateProfileName", IDirectoryServer.UpdateProfileName),
		unary("UpdateProfilePicture", IDirectoryServer.UpdateProfilePicture),
		unary("GetContacts", IDirectoryServer.GetContacts),
		unary("GetStories", IDirectoryServer.GetStories),
		unary("GetChats", IDirectoryServer.GetChats),
		unary("LoadChats", IDirectoryServer.LoadChats),
		unary("GetBroadcastListInfo", IDirectoryServer.GetBroadcastListInfo),
		unary("BlockUser", IDirectoryServer.BlockUser),
		unary("GetBlocklist", IDirectoryServer.GetBlocklist),
		unary("GetBusinessProfile", IDirectoryServer.GetBusinessProfile),
	},
	Metadata: "directory/v1/directory.proto",
}

func RegisterDirectoryServer(s grpc.ServiceRegistrar, srv IDirectoryServer) {
	s.RegisterService(&DirectoryServiceDesc, srv)
}

func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func unary(name string, call func(IDirectoryServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := &structpb.Struct{}
			if err := dec(in); err != nil {
				return nil, err
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(IDirectoryServer), ctx, req.(*structpb.Struct))
			}
			if interceptor == nil {
				return handler(ctx, in)
			}
			return interceptor(ctx, in, &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}, handler)
		},
	}
}

type DirectoryServer struct {
	directory services.IDirectoryService
	log       *slog.Logger
}

func NewDirectoryServer(log *slog.Logger, directory services.IDirectoryService) *DirectoryServer {
	return &DirectoryServer{directory: directory, log: log}
}

func (s *DirectoryServer) OnWhatsApp(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	existence, determined, err := s.directory.OnWhatsApp(ctx, str(in, "id"))
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return reply(map[string]any{
		"determined":  determined,
		"exists":      existence.Exists,
		"jid":         string(existence.JID),
		"is_business": existence.IsBusiness,
	})
}

func (s *DirectoryServer) UpdatePresence(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.raw(s.directory.UpdatePresence(ctx, str(in, "jid"), domain.PresenceType(str(in, "presence"))))
}

func (s *DirectoryServer) RequestPresenceUpdate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.raw(s.directory.RequestPresenceUpdate(ctx, str(in, "jid")))
}

func (s *DirectoryServer) GetStatus(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.raw(s.directory.GetStatus(ctx, str(in, "jid")))
}

func (s *DirectoryServer) SetStatus(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.raw(s.directory.SetStatus(ctx, str(in, "status")))
}

func (s *DirectoryServer) UpdateProfileName(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.raw(s.directory.UpdateProfileName(ctx, str(in, "name")))
}

// UpdateProfilePicture expects the image as a base64 string under "image".
func (s *DirectoryServer) UpdateProfilePicture(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	img, err := base64.StdEncoding.DecodeString(str(in, "image"))
	if err != nil {
		return nil, errors.MapToGRPCError(fmt.Errorf("%w: image is not base64", errors.ErrUnsupportedImage))
	}
	return s.raw(s.directory.UpdateProfilePicture(ctx, str(in, "jid"), img))
}

func (s *DirectoryServer) GetContacts(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return s.raw(s.directory.GetContacts(ctx))
}

func (s *DirectoryServer) GetStories(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	stories, err := s.directory.GetStories(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return reply(map[string]any{
		"stories": lo.Map(stories, func(story domain.Story, _ int) any {
			return map[string]any{
				"unread":   story.Unread,
				"count":    story.Count,
				"messages": story.Messages,
			}
		}),
	})
}

func (s *DirectoryServer) GetChats(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return s.raw(s.directory.GetChats(ctx))
}

// LoadChats reads "count", an optional "before" cursor and an optional "search".
func (s *DirectoryServer) LoadChats(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var before *domain.Cursor
	if cursor := str(in, "before"); cursor != "" {
		before = lo.ToPtr(domain.Cursor(cursor))
	}
	page, err := s.directory.LoadChats(ctx, int(in.GetFields()["count"].GetNumberValue()), before,
		domain.LoadChatsOptions{Search: str(in, "search")})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	fields := map[string]any{
		"chats": lo.Map(page.Chats, func(chat domain.ChatRecord, _ int) any {
			return map[string]any{
				"jid":       string(chat.JID),
				"name":      chat.Name,
				"img_url":   chat.ImgURL,
				"timestamp": chat.Timestamp,
				"unread":    chat.Unread,
				"archived":  chat.Archived,
				"pinned":    chat.Pinned,
			}
		}),
	}
	if page.Cursor != nil {
		fields["cursor"] = string(*page.Cursor)
	}
	return reply(fields)
}

func (s *DirectoryServer) GetBroadcastListInfo(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.raw(s.directory.GetBroadcastListInfo(ctx, str(in, "jid")))
}

func (s *DirectoryServer) BlockUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.raw(s.directory.BlockUser(ctx, str(in, "jid"), domain.BlockAction(str(in, "action"))))
}

func (s *DirectoryServer) GetBlocklist(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return reply(map[string]any{"jids": jidList(s.directory.Blocklist())})
}

func (s *DirectoryServer) GetBusinessProfile(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	profile, found, err := s.directory.GetBusinessProfile(ctx, str(in, "jid"))
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	fields := map[string]any{"found": found}
	if found {
		fields["jid"] = string(profile.JID)
		fields["profile"] = profile.Profile
	}
	return reply(fields)
}

// raw hands the gateway answer back as is, whatever its status.
func (s *DirectoryServer) raw(response domain.Response, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	fields := map[string]any{"status": response.Status}
	if response.Fields != nil {
		fields["fields"] = response.Fields
	}
	if response.Content != nil {
		fields["content"] = response.Content
	}
	out, err := structpb.NewStruct(fields)
	if err != nil {
		s.log.Error("Unable to encode gateway response", "error", err)
		return nil, errors.MapToGRPCError(fmt.Errorf("%w: %v", errors.ErrMalformedResponse, err))
	}
	return out, nil
}

func reply(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, errors.MapToGRPCError(fmt.Errorf("%w: %v", errors.ErrMalformedResponse, err))
	}
	return out, nil
}

func str(in *structpb.Struct, key string) string {
	return in.GetFields()[key].GetStringValue()
}

func jidList(jids []domain.JID) []any {
	return lo.Map(jids, func(jid domain.JID, _ int) any { return string(jid) })
}
