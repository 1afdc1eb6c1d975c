package consultation

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinic/clinic/internal/platform/mongodb"
)

type consultationDoc struct {
	ID       string    `bson:"id"`
	DoctorID string    `bson:"doctorId"`
	RoomID   string    `bson:"roomId"`
	Begin    time.Time `bson:"begin"`
	End      time.Time `bson:"end"`
}

func (d consultationDoc) toConsultation() *Consultation {
	return &Consultation{
		ID:       d.ID,
		DoctorID: d.DoctorID,
		RoomID:   d.RoomID,
		Begin:    d.Begin.UTC(),
		End:      d.End.UTC(),
	}
}

type repoMongo struct{ client *mongodb.Client }

func NewRepoMongo(client *mongodb.Client) Repository { return &repoMongo{client: client} }

var projection = bson.M{"_id": 0, "__v": 0}

func (r *repoMongo) List(ctx context.Context, limit, offset int) ([]*Consultation, int, error) {
	coll := r.client.Collection(mongodb.ConsultationsCollection)
	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count consultations: %w", err)
	}
	page := options.Find().
		SetSort(bson.D{{Key: "begin", Value: 1}, {Key: "id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	docs, err := mongodb.Find[consultationDoc](ctx, coll, bson.M{}, projection, page)
	if err != nil {
		return nil, 0, err
	}
	return toConsultations(docs), int(total), nil
}

func (r *repoMongo) ListAffecting(ctx context.Context, begin, end time.Time) ([]*Consultation, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"$and": bson.A{
			bson.M{"begin": bson.M{"$gte": begin}},
			bson.M{"begin": bson.M{"$lt": end}},
		}},
		bson.M{"$and": bson.A{
			bson.M{"end": bson.M{"$gt": begin}},
			bson.M{"begin": bson.M{"$lte": begin}},
		}},
	}}
	docs, err := mongodb.Find[consultationDoc](ctx, r.client.Collection(mongodb.ConsultationsCollection), filter, projection)
	if err != nil {
		return nil, err
	}
	return toConsultations(docs), nil
}

func (r *repoMongo) Replace(ctx context.Context, items []*Consultation) error {
	ids := make([]string, len(items))
	docs := make([]interface{}, len(items))
	for i, c := range items {
		ids[i] = c.ID
		docs[i] = consultationDoc{ID: c.ID, DoctorID: c.DoctorID, RoomID: c.RoomID, Begin: c.Begin, End: c.End}
	}
	return mongodb.ReplaceByIDs(ctx, r.client.Collection(mongodb.ConsultationsCollection), ids, docs)
}

func toConsultations(docs []consultationDoc) []*Consultation {
	out := make([]*Consultation, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toConsultation())
	}
	return out
}
