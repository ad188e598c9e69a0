package books

import (
	"strings"

	"github.com/bookchain/bookchain/pkg/errcodes"
	"github.com/bookchain/bookchain/pkg/models"
)

// BookPayload is the body of POST /api/v1/books and PUT /api/v1/books/:id.
// Every field is replaced on update, so all four are always required.
type BookPayload struct {
	AuthorFirstName string `json:"author_first_name" form:"author_first_name" mod:"trim" validate:"required,max=255"`
	AuthorLastName  string `json:"author_last_name" form:"author_last_name" mod:"trim" validate:"required,max=255"`
	Type            string `json:"type" form:"type" mod:"trim" validate:"required,max=255"`
	Category        string `json:"category" form:"category" mod:"trim" validate:"required,max=255"`
}

func (p BookPayload) toBook() *models.Book {
	return &models.Book{
		AuthorFirstName: p.AuthorFirstName,
		AuthorLastName:  p.AuthorLastName,
		Type:            p.Type,
		Category:        p.Category,
	}
}

// ValidateBook makes sure none of the client-owned columns are blank. The
// binder already rejects such payloads; this guards direct callers of the
// service.
func ValidateBook(book *models.Book) error {
	values := []string{book.AuthorFirstName, book.AuthorLastName, book.Type, book.Category}

	var missing []string
	for i, value := range values {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, models.BookColumns[i])
		}
	}
	if len(missing) == 0 {
		return nil
	}

	msgs := make([]string, len(missing))
	for i, field := range missing {
		msgs[i] = `"` + field + `" is required`
	}
	return errcodes.ValidationError(strings.Join(msgs, ", "), missing...)
}
