package service

import (
	"context"
	"log/slog"

	"github.com/markethub/products-api/internal/app/dto"
	"github.com/markethub/products-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ProductService implements the six product operations. Each one is a
// short linear pipeline: the role/ownership/validation gates have already
// run by the time a method is called, so the caller identity arrives as an
// explicit, trusted parameter.
type ProductService struct {
	repo              domain.ProductRepository
	tracer            trace.Tracer
	logger            *slog.Logger
	productsCreated   metric.Int64Counter
	productOperations metric.Int64Counter
}

// NewProductService creates a new product service.
func NewProductService(
	repo domain.ProductRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	productsCreated, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)
	productOperations, _ := meter.Int64Counter(
		"products.operations",
		metric.WithDescription("Total number of product operations"),
	)

	return &ProductService{
		repo:              repo,
		tracer:            tracer,
		logger:            logger,
		productsCreated:   productsCreated,
		productOperations: productOperations,
	}
}

func (s *ProductService) countOperation(ctx context.Context, operation, result string) {
	s.productOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

// AddProduct inserts a new product owned by the caller. Any owner value a
// client might smuggle into the payload is irrelevant: the request shape
// has no owner field and the stamp always comes from caller.ID.
func (s *ProductService) AddProduct(ctx context.Context, caller domain.Caller, req *dto.AddProductRequest) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.AddProduct")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.name", req.Name),
		attribute.Float64("product.price", req.Price),
	)

	product := req.ToProduct(caller.ID)

	id, err := s.repo.Insert(ctx, product)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store product")
		s.logger.ErrorContext(ctx, "Failed to store product",
			slog.String("error", err.Error()),
		)
		s.countOperation(ctx, "add", "failure")
		return err
	}

	s.productsCreated.Add(ctx, 1)
	s.countOperation(ctx, "add", "success")

	s.logger.InfoContext(ctx, "Product added",
		slog.String("product_id", id),
		slog.String("owner_id", caller.ID),
	)

	span.SetStatus(codes.Ok, "Product added")
	return nil
}

// GetProductDetails fetches a product by id. The owner id is stripped by
// construction: the response shape does not carry it.
func (s *ProductService) GetProductDetails(ctx context.Context, id string) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductDetails")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", id),
		)
		s.countOperation(ctx, "details", "not_found")
		return nil, err
	}

	s.countOperation(ctx, "details", "success")
	span.SetStatus(codes.Ok, "Product retrieved")
	return dto.ToProductResponse(product), nil
}

// DeleteProduct deletes by id unconditionally. The ownership gate has
// already run; a missing id is a silent no-op success.
func (s *ProductService) DeleteProduct(ctx context.Context, caller domain.Caller, id string) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete product")
		s.logger.ErrorContext(ctx, "Failed to delete product",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
		s.countOperation(ctx, "delete", "failure")
		return err
	}

	s.countOperation(ctx, "delete", "success")
	s.logger.InfoContext(ctx, "Product deleted",
		slog.String("product_id", id),
		slog.String("caller_id", caller.ID),
	)

	span.SetStatus(codes.Ok, "Product deleted")
	return nil
}

// EditProduct applies a field-level patch. Only supplied fields are
// overwritten; matching nothing still reports success.
func (s *ProductService) EditProduct(ctx context.Context, caller domain.Caller, id string, req *dto.EditProductRequest) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.EditProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	if err := s.repo.UpdateFields(ctx, id, req.ToPatch()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update product")
		s.logger.ErrorContext(ctx, "Failed to update product",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
		s.countOperation(ctx, "edit", "failure")
		return err
	}

	s.countOperation(ctx, "edit", "success")
	s.logger.InfoContext(ctx, "Product updated",
		slog.String("product_id", id),
		slog.String("caller_id", caller.ID),
	)

	span.SetStatus(codes.Ok, "Product updated")
	return nil
}

// ListForBuyer returns a page of public product projections across all
// sellers, optionally filtered by a name substring.
func (s *ProductService) ListForBuyer(ctx context.Context, req *dto.ListProductsRequest) ([]dto.ProductCardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListForBuyer")
	defer span.End()

	return s.list(ctx, span, "buyer_list", domain.ListQuery{
		SearchText: req.SearchText,
		Skip:       req.Skip(),
		Limit:      int64(req.Limit),
	})
}

// ListForSeller is the buyer listing additionally scoped to the caller's
// own products.
func (s *ProductService) ListForSeller(ctx context.Context, caller domain.Caller, req *dto.ListProductsRequest) ([]dto.ProductCardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListForSeller")
	defer span.End()

	return s.list(ctx, span, "seller_list", domain.ListQuery{
		OwnerID:    caller.ID,
		SearchText: req.SearchText,
		Skip:       req.Skip(),
		Limit:      int64(req.Limit),
	})
}

func (s *ProductService) list(ctx context.Context, span trace.Span, operation string, q domain.ListQuery) ([]dto.ProductCardResponse, error) {
	span.SetAttributes(
		attribute.Int64("page.skip", q.Skip),
		attribute.Int64("page.limit", q.Limit),
	)

	cards, err := s.repo.List(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list products")
		s.logger.ErrorContext(ctx, "Failed to list products",
			slog.String("error", err.Error()),
		)
		s.countOperation(ctx, operation, "failure")
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(cards)))
	s.countOperation(ctx, operation, "success")

	span.SetStatus(codes.Ok, "Products listed")
	return dto.ToProductCardResponses(cards), nil
}
