package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"itemshare/app/item"
	"itemshare/domain"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// CatalogServiceName is the fully qualified name of the catalog service.
const CatalogServiceName = "itemshare.v1.CatalogService"

// Catalog is the read side served over gRPC.
type Catalog interface {
	List(ctx context.Context, q item.Query) ([]domain.Item, error)
	Get(ctx context.Context, id string) (domain.Item, error)
	Categories(ctx context.Context) ([]string, error)
}

// CatalogServiceServer exchanges google.protobuf.Struct messages, so no
// generated code is needed on either side.
type CatalogServiceServer interface {
	ListItems(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListCategories(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListItems", Handler: unaryHandler("ListItems", CatalogServiceServer.ListItems)},
		{MethodName: "GetItem", Handler: unaryHandler("GetItem", CatalogServiceServer.GetItem)},
		{MethodName: "ListCategories", Handler: unaryHandler("ListCategories", CatalogServiceServer.ListCategories)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "itemshare/v1/catalog.proto",
}

func RegisterCatalogServiceServer(registrar grpc.ServiceRegistrar, srv CatalogServiceServer) {
	registrar.RegisterService(&catalogServiceDesc, srv)
}

type catalogMethod func(CatalogServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, method catalogMethod) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return method(srv.(CatalogServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + CatalogServiceName + "/" + name,
		}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return method(srv.(CatalogServiceServer), ctx, req.(*structpb.Struct))
		})
	}
}

type CatalogService struct {
	catalog Catalog
}

func NewCatalogService(catalog Catalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// ListItems accepts optional "search" and "category" fields.
func (s *CatalogService) ListItems(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	items, err := s.catalog.List(ctx, item.Query{
		Search:   stringField(req, "search"),
		Category: stringField(req, "category"),
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	list := make([]any, 0, len(items))
	for _, it := range items {
		list = append(list, itemFields(it))
	}

	return newStruct(map[string]any{
		"items":      list,
		"totalItems": len(items),
	})
}

func (s *CatalogService) GetItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := strings.TrimSpace(stringField(req, "id"))
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	it, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	return newStruct(map[string]any{"item": itemFields(it)})
}

func (s *CatalogService) ListCategories(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}

	list := make([]any, 0, len(categories))
	for _, category := range categories {
		list = append(list, category)
	}

	return newStruct(map[string]any{"categories": list})
}

func (s *CatalogService) mapError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return status.Error(codes.NotFound, "item not found")
	}
	if errors.Is(err, domain.ErrPersistence) {
		return status.Error(codes.Unavailable, "item storage is unavailable")
	}
	zap.L().Error("Catalog request failed", zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}

func itemFields(it domain.Item) map[string]any {
	return map[string]any{
		"id":          it.ID,
		"title":       it.Title,
		"description": it.Description,
		"category":    it.Category,
		"image":       it.Image,
		"owner":       it.Owner,
		"available":   it.Available,
		"status":      string(it.Status),
		"createdAt":   it.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func stringField(req *structpb.Struct, name string) string {
	if req == nil {
		return ""
	}
	return req.GetFields()[name].GetStringValue()
}

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding response: %v", err)
	}
	return out, nil
}
