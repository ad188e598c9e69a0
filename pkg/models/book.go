package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID              int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt       time.Time `bun:",nullzero,notnull" json:"created_at"`
	UpdatedAt       time.Time `bun:",nullzero,notnull" json:"updated_at"`
	AuthorFirstName string    `bun:",notnull" json:"author_first_name"`
	AuthorLastName  string    `bun:",notnull" json:"author_last_name"`
	Type            string    `bun:",notnull" json:"type"`
	Category        string    `bun:",notnull" json:"category"`
}

// BookColumns are the columns a client owns. Everything else is assigned by
// the store.
var BookColumns = []string{"author_first_name", "author_last_name", "type", "category"}
