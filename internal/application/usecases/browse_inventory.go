package usecases

import (
	"context"
	"fmt"

	"github.com/example/traillend-client/internal/domain/inventory"
)

// ItemLister is the slice of the API client inventory browsing needs.
type ItemLister interface {
	Items(ctx context.Context) ([]inventory.Item, error)
}

type BrowseInventory struct {
	API ItemLister
}

func (u BrowseInventory) Execute(ctx context.Context) ([]inventory.Item, error) {
	if u.API == nil {
		return nil, fmt.Errorf("api client is nil")
	}
	return u.API.Items(ctx)
}

// FindItem resolves one item by id from the listing endpoint; the backend
// has no per-item route.
func (u BrowseInventory) FindItem(ctx context.Context, id int64) (inventory.Item, error) {
	items, err := u.Execute(ctx)
	if err != nil {
		return inventory.Item{}, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return inventory.Item{}, fmt.Errorf("item %d not found", id)
}
