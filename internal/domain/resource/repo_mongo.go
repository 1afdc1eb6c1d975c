package resource

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/clinic/clinic/internal/platform/mongodb"
	"github.com/clinic/clinic/pkg/timeslot"
)

// resourceDoc mirrors the documents of the doctors and rooms collections:
// {id, name, times: [{begin, end} | null] x 7}.
type resourceDoc struct {
	ID    string     `bson:"id"`
	Name  string     `bson:"name"`
	Times []*timeDoc `bson:"times"`
}

type timeDoc struct {
	Begin string `bson:"begin"`
	End   string `bson:"end"`
}

type repoMongo struct{ client *mongodb.Client }

func NewRepoMongo(client *mongodb.Client) Repository { return &repoMongo{client: client} }

func collectionFor(kind Kind) string {
	if kind == KindRoom {
		return mongodb.RoomsCollection
	}
	return mongodb.DoctorsCollection
}

func (r *repoMongo) List(ctx context.Context, kind Kind) ([]*Resource, error) {
	projection := bson.M{"_id": 0, "times._id": 0, "__v": 0}
	docs, err := mongodb.Find[resourceDoc](ctx, r.client.Collection(collectionFor(kind)), bson.M{}, projection)
	if err != nil {
		return nil, err
	}
	items := make([]*Resource, 0, len(docs))
	for _, d := range docs {
		res, err := d.toResource(kind)
		if err != nil {
			return nil, err
		}
		items = append(items, res)
	}
	return items, nil
}

func (r *repoMongo) Replace(ctx context.Context, kind Kind, items []*Resource) error {
	ids := make([]string, len(items))
	docs := make([]interface{}, len(items))
	for i, res := range items {
		ids[i] = res.ID
		docs[i] = fromResource(res)
	}
	return mongodb.ReplaceByIDs(ctx, r.client.Collection(collectionFor(kind)), ids, docs)
}

func (d resourceDoc) toResource(kind Kind) (*Resource, error) {
	res := &Resource{ID: d.ID, Kind: kind, Name: d.Name}
	for day, t := range d.Times {
		if day >= timeslot.DaysPerWeek {
			break
		}
		if t == nil || (t.Begin == "" && t.End == "") {
			continue
		}
		s, err := timeslot.New(t.Begin, t.End)
		if err != nil {
			return nil, err
		}
		res.WorkingHours[day] = &s
	}
	return res, nil
}

func fromResource(res *Resource) resourceDoc {
	d := resourceDoc{ID: res.ID, Name: res.Name, Times: make([]*timeDoc, timeslot.DaysPerWeek)}
	for day, s := range res.WorkingHours {
		if s == nil {
			continue
		}
		d.Times[day] = &timeDoc{Begin: s.Begin.String(), End: s.End.String()}
	}
	return d
}
