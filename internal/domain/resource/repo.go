package resource

import "context"

type Repository interface {
	List(ctx context.Context, kind Kind) ([]*Resource, error)
	// Replace stores items, overwriting any record of the same kind and id.
	Replace(ctx context.Context, kind Kind, items []*Resource) error
}
