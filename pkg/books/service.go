package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/bookchain/bookchain/pkg/errcodes"
	"github.com/bookchain/bookchain/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID *int
}

// Service is the only owner of the books table. Every method runs exactly one
// statement.
type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateBook inserts book and fills in the id and timestamps assigned by the
// database.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	if err := ValidateBook(book); err != nil {
		return err
	}

	now := time.Now()
	book.ID = 0
	book.CreatedAt = now
	book.UpdatedAt = now

	_, err := svc.db.
		NewInsert().
		Model(book).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

// ListBooks returns every book in insertion order. The result is never nil.
func (svc *Service) ListBooks(ctx context.Context) ([]*models.Book, error) {
	books := make([]*models.Book, 0)

	err := svc.db.
		NewSelect().
		Model(&books).
		Order("b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	if opts.ID == nil {
		return nil, errcodes.NotFound("Book")
	}

	book := &models.Book{}
	err := svc.db.
		NewSelect().
		Model(book).
		Where("b.id = ?", *opts.ID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

// UpdateBook replaces the client-owned columns of the row with book.ID. The id
// and created_at are never touched.
func (svc *Service) UpdateBook(ctx context.Context, book *models.Book) error {
	if err := ValidateBook(book); err != nil {
		return err
	}

	book.UpdatedAt = time.Now()
	columns := append(append([]string{}, models.BookColumns...), "updated_at")

	res, err := svc.db.
		NewUpdate().
		Model(book).
		Column(columns...).
		WherePK().
		Returning("*").
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errcodes.NotFound("Book")
		}
		return errors.WithStack(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errcodes.NotFound("Book")
	}

	return nil
}

func (svc *Service) DeleteBook(ctx context.Context, id int) error {
	res, err := svc.db.
		NewDelete().
		Model((*models.Book)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if n == 0 {
		return errcodes.NotFound("Book")
	}

	return nil
}

// DeleteAllBooks empties the table and reports how many rows were removed.
// The id sequence is not reset.
func (svc *Service) DeleteAllBooks(ctx context.Context) (int, error) {
	res, err := svc.db.
		NewDelete().
		Model((*models.Book)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return int(n), nil
}
