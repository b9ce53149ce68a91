package template

import (
	"context"
	"errors"

	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
	"go.uber.org/zap"
)

type Service interface {
	ListTemplates(ctx context.Context) ([]EventTemplate, error)
	CreateTemplate(ctx context.Context, name string) (*EventTemplate, error)
	// RememberNames records names seen in imported data, ignoring duplicates.
	RememberNames(ctx context.Context, names []string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) ListTemplates(ctx context.Context) ([]EventTemplate, error) {
	return s.repo.List(ctx)
}

func (s *service) CreateTemplate(ctx context.Context, name string) (*EventTemplate, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	tpl := &EventTemplate{Name: name}
	if err := s.repo.Create(ctx, tpl); err != nil {
		if errors.Is(err, ErrDuplicateName) {
			return nil, apperror.NewValidation("", "事件模板已存在")
		}
		s.logger.Error("Failed to create template", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return tpl, nil
}

func (s *service) RememberNames(ctx context.Context, names []string) error {
	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, n := range names {
		n, err := normalizeName(n)
		if err != nil {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		unique = append(unique, n)
	}
	return s.repo.EnsureNames(ctx, unique)
}
