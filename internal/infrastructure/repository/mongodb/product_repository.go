package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/markethub/products-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const productCollectionName = "products"

// productDocument is the persisted shape of a product. The domain entity
// stays free of driver types; this mapping is the only place that knows
// about ObjectIDs and bson tags.
type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     string             `bson:"ownerId"`
	Name        string             `bson:"name"`
	Brand       string             `bson:"brand"`
	Category    string             `bson:"category"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Quantity    int                `bson:"quantity"`
	Image       string             `bson:"image,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *productDocument) toDomain() *domain.Product {
	return &domain.Product{
		ID:          d.ID.Hex(),
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Brand:       d.Brand,
		Category:    d.Category,
		Description: d.Description,
		Price:       d.Price,
		Quantity:    d.Quantity,
		Image:       d.Image,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ProductRepository is the MongoDB implementation of
// domain.ProductRepository.
type ProductRepository struct {
	collection *mongo.Collection
	tracer     trace.Tracer
	logger     *slog.Logger
}

// NewProductRepository creates a product repository on the given database.
func NewProductRepository(db *mongo.Database, tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection(productCollectionName),
		tracer:     tracer,
		logger:     logger,
	}
}

// Insert stores a new product and returns the store-assigned id.
func (r *ProductRepository) Insert(ctx context.Context, product *domain.Product) (string, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Insert")
	defer span.End()

	now := time.Now().UTC()
	doc := productDocument{
		OwnerID:     product.OwnerID,
		Name:        product.Name,
		Brand:       product.Brand,
		Category:    product.Category,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
		Image:       product.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Insert failed")
		return "", fmt.Errorf("failed to insert product: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	product.ID = oid.Hex()
	product.CreatedAt = now
	product.UpdatedAt = now

	span.SetAttributes(attribute.String("product.id", product.ID))
	r.logger.DebugContext(ctx, "Product inserted",
		slog.String("product_id", product.ID),
	)
	return product.ID, nil
}

// FindByID returns the product or domain.ErrProductNotFound.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var doc productDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			span.SetStatus(codes.Error, "Product not found")
			return nil, domain.ErrProductNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return doc.toDomain(), nil
}

// OwnerOf returns the owner id of a product without loading the whole
// document.
func (r *ProductRepository) OwnerOf(ctx context.Context, id string) (string, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.OwnerOf")
	defer span.End()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", domain.ErrInvalidID
	}

	var doc struct {
		OwnerID string `bson:"ownerId"`
	}
	err = r.collection.FindOne(ctx, bson.M{"_id": oid},
		options.FindOne().SetProjection(bson.M{"ownerId": 1}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrProductNotFound
		}
		span.RecordError(err)
		return "", fmt.Errorf("failed to find product owner: %w", err)
	}

	return doc.OwnerID, nil
}

// DeleteByID removes a product. Deleting an absent id is a no-op.
func (r *ProductRepository) DeleteByID(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.DeleteByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Delete failed")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.DebugContext(ctx, "Product delete executed",
		slog.String("product_id", id),
		slog.Int64("deleted_count", result.DeletedCount),
	)
	return nil
}

// UpdateFields applies a $set with only the supplied fields. Matching
// nothing is a no-op.
func (r *ProductRepository) UpdateFields(ctx context.Context, id string, patch domain.ProductPatch) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.UpdateFields")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Brand != nil {
		set["brand"] = *patch.Brand
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Quantity != nil {
		set["quantity"] = *patch.Quantity
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Update failed")
		return fmt.Errorf("failed to update product: %w", err)
	}

	r.logger.DebugContext(ctx, "Product update executed",
		slog.String("product_id", id),
		slog.Int64("matched_count", result.MatchedCount),
	)
	return nil
}

// List returns a page of public projections. No sort is applied: pages
// follow the collection's natural order.
func (r *ProductRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.ProductCard, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.List")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("page.skip", q.Skip),
		attribute.Int64("page.limit", q.Limit),
	)

	findOptions := options.Find().
		SetSkip(q.Skip).
		SetLimit(q.Limit).
		SetProjection(bson.M{
			"_id":   0,
			"name":  1,
			"price": 1,
			"brand": 1,
			"image": 1,
		})

	cursor, err := r.collection.Find(ctx, buildListFilter(q), findOptions)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Find failed")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Name  string  `bson:"name"`
		Price float64 `bson:"price"`
		Brand string  `bson:"brand"`
		Image string  `bson:"image"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	cards := make([]domain.ProductCard, len(docs))
	for i, d := range docs {
		cards[i] = domain.ProductCard{
			Name:  d.Name,
			Price: d.Price,
			Brand: d.Brand,
			Image: d.Image,
		}
	}

	span.SetAttributes(attribute.Int("product.count", len(cards)))
	return cards, nil
}

// buildListFilter translates a list query into a bson filter. The search
// text is escaped so the match is always a plain case-insensitive
// substring, never a user-supplied regular expression.
func buildListFilter(q domain.ListQuery) bson.M {
	filter := bson.M{}
	if q.OwnerID != "" {
		filter["ownerId"] = q.OwnerID
	}
	if q.SearchText != "" {
		filter["name"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(q.SearchText),
			Options: "i",
		}
	}
	return filter
}
