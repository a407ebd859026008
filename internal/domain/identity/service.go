package identity

import (
	"context"
	"fmt"
)

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

var validRoles = map[string]bool{
	"patient": true, "doctor": true, "admin": true,
}

func (s *Service) CreateUser(ctx context.Context, u *User) error {
	if u.Name == "" {
		return fmt.Errorf("name is required")
	}
	if u.Role == "" {
		u.Role = "patient"
	}
	if !validRoles[u.Role] {
		return fmt.Errorf("invalid role: %s", u.Role)
	}
	return s.users.Create(ctx, u)
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) UpdateUser(ctx context.Context, u *User) error {
	if u.Role != "" && !validRoles[u.Role] {
		return fmt.Errorf("invalid role: %s", u.Role)
	}
	return s.users.Update(ctx, u)
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.users.List(ctx, limit, offset)
}

// ListDoctors returns the practitioner directory for the booking form,
// optionally filtered by specialization.
func (s *Service) ListDoctors(ctx context.Context, specialization string, limit, offset int) ([]Doctor, int, error) {
	users, total, err := s.users.ListDoctors(ctx, specialization, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	doctors := make([]Doctor, len(users))
	for i, u := range users {
		doctors[i] = u.AsDoctor()
	}
	return doctors, total, nil
}

// GetStats returns account-level aggregates for the dashboard.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	patients, err := s.users.CountByRole(ctx, "patient")
	if err != nil {
		return nil, err
	}
	doctors, err := s.users.CountByRole(ctx, "doctor")
	if err != nil {
		return nil, err
	}
	return &Stats{TotalPatients: patients, TotalDoctors: doctors}, nil
}
