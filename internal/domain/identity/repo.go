package identity

import "context"

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*User, int, error)
	ListByRole(ctx context.Context, role string, limit, offset int) ([]*User, int, error)
	ListDoctors(ctx context.Context, specialization string, limit, offset int) ([]*User, int, error)
	CountByRole(ctx context.Context, role string) (int, error)
}
