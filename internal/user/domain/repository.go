package domain

import "context"

type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id ID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
