package template

import (
	"context"
	"errors"

	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateName is returned by Create when the name already exists.
var ErrDuplicateName = errors.New("template name already exists")

const uniqueViolation = "23505"

type Repository interface {
	List(ctx context.Context) ([]EventTemplate, error)
	Create(ctx context.Context, tpl *EventTemplate) error
	// EnsureNames inserts the names that do not exist yet.
	EnsureNames(ctx context.Context, names []string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]EventTemplate, error) {
	var templates []EventTemplate
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&templates).Error; err != nil {
		return nil, apperror.NewStore("list templates", err)
	}
	return templates, nil
}

func (r *repository) Create(ctx context.Context, tpl *EventTemplate) error {
	err := r.db.WithContext(ctx).Create(tpl).Error
	if isUniqueViolation(err) {
		return ErrDuplicateName
	}
	return apperror.NewStore("create template", err)
}

func (r *repository) EnsureNames(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	rows := make([]EventTemplate, 0, len(names))
	for _, n := range names {
		rows = append(rows, EventTemplate{Name: n})
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error
	return apperror.NewStore("ensure templates", err)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
