package client

import (
	"context"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
)

// Client is the remote user service contract.
type Client interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, u models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, u models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
