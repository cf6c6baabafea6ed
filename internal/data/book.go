// Package data provides the data models and the in-memory storage layer
// for the library catalog.
package data

// Book represents a single catalog record held by the BookStore.
// An ID of 0 means the record has not been stored yet.
type Book struct {
	ID              int64  `json:"id"`              // Unique identifier assigned by the store
	Title           string `json:"title"`           // Title of the book
	Author          string `json:"author"`          // Author name, searched case-insensitively
	ISBN            string `json:"isbn"`            // Unvalidated ISBN string
	PublicationYear *int   `json:"publicationYear"` // Year of publication, null when unknown
	Available       bool   `json:"available"`       // false while the book is borrowed
}

// MaxBookID is the largest id a caller may assign explicitly. It is also the
// largest integer JSON clients can represent exactly, and it keeps the id
// counter far from overflow.
const MaxBookID int64 = 1<<53 - 1

// BookInput holds the fields a client may send when creating or replacing a book.
// Every field is a pointer so we can distinguish between "not provided" (nil)
// and "intentionally set to zero/empty".
type BookInput struct {
	ID              *int64  `json:"id"`
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	ISBN            *string `json:"isbn"`
	PublicationYear *int    `json:"publicationYear"`
	Available       *bool   `json:"available"`
}

// clone returns a copy of b that shares no memory with it.
func (b Book) clone() Book {
	if b.PublicationYear != nil {
		year := *b.PublicationYear
		b.PublicationYear = &year
	}
	return b
}

// SeedBooks returns the records every new catalog starts with.
// They occupy ids 1..3, so the first generated id is 4.
func SeedBooks() []Book {
	year := func(y int) *int { return &y }
	return []Book{
		{ID: 1, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", ISBN: "978-0-7432-7356-5", PublicationYear: year(1925), Available: true},
		{ID: 2, Title: "To Kill a Mockingbird", Author: "Harper Lee", ISBN: "978-0-06-112008-4", PublicationYear: year(1960), Available: true},
		{ID: 3, Title: "1984", Author: "George Orwell", ISBN: "978-0-452-28423-4", PublicationYear: year(1949), Available: false},
	}
}
