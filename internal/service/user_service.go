package service

import (
	"context"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type UpdateUserRequest struct {
	Name       string         `json:"name" binding:"required,max=100"`
	Role       model.UserRole `json:"role" binding:"required,oneof=user admin"`
	Subscribed bool           `json:"subscribed"`
}

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) List(ctx context.Context, search string, p util.Page) ([]model.User, int64, error) {
	return s.UserRepo.List(ctx, search, p.Offset(), p.Limit)
}

func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return nil, util.NotFoundOr(err, "user")
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return nil, util.NotFoundOr(err, "user")
	}

	user.Name = req.Name
	user.Role = req.Role
	user.Subscribed = req.Subscribed
	if err := s.UserRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
