package backend

import (
	"context"
	"fmt"
	"net/http"

	"admin-console/internal/models"
)

const resourceHouses = "houses"

// ListHouses returns every house record.
func (c *Client) ListHouses(ctx context.Context) ([]models.House, error) {
	var houses []models.House
	if err := c.doJSON(ctx, http.MethodGet, resourceHouses, "/houses", nil, &houses); err != nil {
		return nil, err
	}
	return houses, nil
}

// GetHouse returns one house record.
func (c *Client) GetHouse(ctx context.Context, id int64) (*models.House, error) {
	var house models.House
	if err := c.doJSON(ctx, http.MethodGet, resourceHouses, fmt.Sprintf("/houses/%d", id), nil, &house); err != nil {
		return nil, err
	}
	return &house, nil
}

// ListHouseServices returns the services associated with a house.
func (c *Client) ListHouseServices(ctx context.Context, id int64) ([]models.Service, error) {
	var services []models.Service
	if err := c.doJSON(ctx, http.MethodGet, resourceHouses, fmt.Sprintf("/houses/%d/services", id), nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// ListHouseUsers returns the members of a house.
func (c *Client) ListHouseUsers(ctx context.Context, id int64) ([]models.User, error) {
	var users []models.User
	if err := c.doJSON(ctx, http.MethodGet, resourceHouses, fmt.Sprintf("/houses/%d/users", id), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
