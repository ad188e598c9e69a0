package books

import (
	"net/http"
	"strconv"

	"github.com/bookchain/bookchain/pkg/binder"
	"github.com/bookchain/bookchain/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type handler struct {
	bookService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.ListBooks(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, books))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, ok := parseID(c.Param("id"))
	if !ok {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	params := BookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book := params.toBook()
	err := h.bookService.CreateBook(ctx, book)
	if err != nil {
		return errors.WithStack(err)
	}

	log.Info("book created", logger.Data{"book_id": book.ID})

	return errors.WithStack(c.JSON(http.StatusCreated, book))
}

// update validates the payload before looking at the id, so a request that
// is missing fields is a 422 no matter which book it targets.
func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	params := BookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		return errcodes.NotFound("Book")
	}

	book := params.toBook()
	book.ID = id
	err := h.bookService.UpdateBook(ctx, book)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) deleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	id, ok := parseID(c.Param("id"))
	if !ok {
		return errcodes.NotFound("Book")
	}

	err := h.bookService.DeleteBook(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	log.Info("book deleted", logger.Data{"book_id": id})

	return c.NoContent(http.StatusNoContent)
}

// parseID accepts only the canonical decimal form of a positive id, so "+1"
// and "01" do not alias book 1.
func parseID(s string) (int, bool) {
	if s == "" || s[0] == '0' {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return id, true
}

// allowEmptyBody lets body-less writes reach validation so they are reported
// as missing fields (422) rather than as an empty body (400).
func allowEmptyBody(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(binder.AllowEmptyBodyKey, true)
		return next(c)
	}
}
