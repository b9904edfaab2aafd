package backend

import (
	"context"
	"net/http"

	"admin-console/internal/models"
)

const resourceOffers = "offer-snapshots"

// ListOfferSnapshots returns the full offer catalog. There is no server-side
// zip filter; geography filtering is a client responsibility.
func (c *Client) ListOfferSnapshots(ctx context.Context) ([]models.OfferSnapshot, error) {
	var offers []models.OfferSnapshot
	if err := c.doJSON(ctx, http.MethodGet, resourceOffers, "/offer-snapshots", nil, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}
