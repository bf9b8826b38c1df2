package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/flora-console/internal/model"
)

// UsersBoard содержит активных и деактивированных операторов.
type UsersBoard struct {
	Active   []model.User `json:"active"`
	Inactive []model.User `json:"inactive"`
}

// Users загружает оба списка операторов параллельно. Ошибка любого запроса прерывает всю загрузку.
func (s *Service) Users(ctx context.Context) (*UsersBoard, error) {
	var board UsersBoard

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := s.api.ListUsers(gctx)
		board.Active = users
		return err
	})
	g.Go(func() error {
		users, err := s.api.ListInactiveUsers(gctx)
		board.Inactive = users
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &board, nil
}

// User возвращает оператора по идентификатору.
func (s *Service) User(ctx context.Context, id int64) (*model.User, error) {
	return s.api.GetUser(ctx, id)
}

// CreateUser проверяет форму и создаёт оператора.
func (s *Service) CreateUser(ctx context.Context, f model.UserForm) (*model.User, error) {
	if err := s.validator.User(&f, true); err != nil {
		return nil, err
	}
	return s.api.CreateUser(ctx, userPayload(f))
}

// UpdateUser проверяет форму и изменяет оператора. Пустые телефоны отбрасываются.
func (s *Service) UpdateUser(ctx context.Context, id int64, f model.UserForm) (*model.User, error) {
	if err := s.validator.User(&f, false); err != nil {
		return nil, err
	}
	return s.api.UpdateUser(ctx, id, userPayload(f))
}

func userPayload(f model.UserForm) model.UserPayload {
	return model.UserPayload{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Password:  f.Password,
		Role:      f.Role,
		Phones:    f.Phones,
		Active:    f.Active,
	}
}

// DeactivateUser деактивирует оператора.
func (s *Service) DeactivateUser(ctx context.Context, id int64) error {
	return s.api.DeleteUser(ctx, id)
}

// ReactivateUser возвращает оператора в число активных.
func (s *Service) ReactivateUser(ctx context.Context, id int64) error {
	return s.api.ReactivateUser(ctx, id)
}
