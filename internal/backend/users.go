package backend

import (
	"context"
	"fmt"
	"net/http"

	"admin-console/internal/models"
)

const (
	resourceUsers = "users"
	resourceTasks = "tasks"
)

// ListUsers returns every user record.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.doJSON(ctx, http.MethodGet, resourceUsers, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns one user record.
func (c *Client) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, resourceUsers, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUserTasks returns the tasks assigned to a user.
func (c *Client) ListUserTasks(ctx context.Context, userID int64) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.doJSON(ctx, http.MethodGet, resourceTasks, fmt.Sprintf("/tasks/user/%d", userID), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
