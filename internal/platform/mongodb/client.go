package mongodb

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names shared by the MongoDB repositories.
const (
	DoctorsCollection       = "doctors"
	RoomsCollection         = "rooms"
	ConsultationsCollection = "consultations"
)

// Client wraps a connected mongo client bound to one database.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials the server and verifies it with a ping.
func Connect(ctx context.Context, uri, database string) (*Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Client{client: client, db: client.Database(database)}, nil
}

func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Find runs a query with an optional projection and decodes every document into T.
func Find[T any](ctx context.Context, coll *mongo.Collection, filter, projection interface{}, opts ...*options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	findOpts := options.Find()
	if projection != nil {
		findOpts.SetProjection(projection)
	}
	opts = append([]*options.FindOptions{findOpts}, opts...)

	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	defer cur.Close(ctx)

	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

// ReplaceByIDs upserts docs, replacing the document whose "id" matches the id
// at the same index. Documents not named in ids are left alone, and a failed
// write never removes an existing document.
func ReplaceByIDs(ctx context.Context, coll *mongo.Collection, ids []string, docs []interface{}) error {
	models, err := replaceModels(ids, docs)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		return nil
	}
	if _, err := coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("replace %s: %w", coll.Name(), err)
	}
	return nil
}

func replaceModels(ids []string, docs []interface{}) ([]mongo.WriteModel, error) {
	if len(ids) != len(docs) {
		return nil, fmt.Errorf("replace: %d ids for %d documents", len(ids), len(docs))
	}
	models := make([]mongo.WriteModel, len(docs))
	for i, doc := range docs {
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.M{"id": ids[i]}).
			SetReplacement(doc).
			SetUpsert(true)
	}
	return models, nil
}

// HealthHandler returns a handler for the document store health check endpoint.
func HealthHandler(c *Client) echo.HandlerFunc {
	return func(ec echo.Context) error {
		ctx, cancel := context.WithTimeout(ec.Request().Context(), 5*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			return ec.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status": "unhealthy",
				"store":  "mongo",
				"error":  err.Error(),
			})
		}
		return ec.JSON(http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"store":  "mongo",
		})
	}
}
