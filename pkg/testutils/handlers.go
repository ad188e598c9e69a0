package testutils

import (
	"net/http"

	"github.com/bookchain/bookchain/pkg/books"
	"github.com/bookchain/bookchain/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	bookService *books.Service
}

// createBookRequest is the request body for seeding a test book.
type createBookRequest struct {
	AuthorFirstName string `json:"author_first_name" validate:"required"`
	AuthorLastName  string `json:"author_last_name" validate:"required"`
	Type            string `json:"type" validate:"required"`
	Category        string `json:"category" validate:"required"`
}

// createBook seeds a book without going through the public API.
// POST /test/books.
func (h *handler) createBook(c echo.Context) error {
	ctx := c.Request().Context()

	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}

	book := &models.Book{
		AuthorFirstName: req.AuthorFirstName,
		AuthorLastName:  req.AuthorLastName,
		Type:            req.Type,
		Category:        req.Category,
	}
	if err := h.bookService.CreateBook(ctx, book); err != nil {
		return errors.Wrap(err, "failed to create book")
	}

	return c.JSON(http.StatusCreated, book)
}

// deleteAllBooksResponse is the response body for deleting all books.
type deleteAllBooksResponse struct {
	Deleted int `json:"deleted"`
}

// deleteAllBooks empties the books table.
// DELETE /test/books.
func (h *handler) deleteAllBooks(c echo.Context) error {
	ctx := c.Request().Context()

	deleted, err := h.bookService.DeleteAllBooks(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete books")
	}

	return c.JSON(http.StatusOK, deleteAllBooksResponse{
		Deleted: deleted,
	})
}
