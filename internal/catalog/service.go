// Package catalog implements the business rules of the library catalog:
// field validation, existence checks and the available/borrowed state machine.
// It is the only layer that mutates books, and it does so through a Store.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aoideee/library-catalog/internal/data"
	"github.com/aoideee/library-catalog/internal/validator"
)

// Store is the storage the Service works on. *data.BookStore satisfies it.
type Store interface {
	FindAll() []data.Book
	FindByID(id int64) (data.Book, bool)
	Save(book data.Book) data.Book
	Update(id int64, book data.Book) (data.Book, bool)
	Modify(id int64, fn func(b *data.Book) error) (data.Book, error)
	DeleteByID(id int64) bool
	ExistsByID(id int64) bool
	FindByAuthor(author string) []data.Book
	FindAvailableBooks() []data.Book
}

// Service mediates every access to the Store.
type Service struct {
	books  Store
	logger *slog.Logger
}

// New returns a Service over books. A nil logger discards all output.
func New(books Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{books: books, logger: logger}
}

// GetAllBooks returns every book in the catalog.
func (s *Service) GetAllBooks() []data.Book {
	return s.books.FindAll()
}

// GetBookByID returns the book with the given id. Absence is reported through
// the boolean, not as an error.
func (s *Service) GetBookByID(id int64) (data.Book, bool) {
	return s.books.FindByID(id)
}

// CreateBook validates input and stores it as a new book. Availability
// defaults to true when the input leaves it unset.
func (s *Service) CreateBook(input data.BookInput) (data.Book, error) {
	v := checkBook(input)
	if input.ID != nil {
		v.Check(*input.ID >= 1 && *input.ID <= data.MaxBookID, "id", fmt.Sprintf("must be between 1 and %d", data.MaxBookID))
	}
	if !v.Valid() {
		return data.Book{}, &ValidationError{Errors: v.Errors}
	}

	book := bookFromInput(input)
	book.Available = true
	if input.Available != nil {
		book.Available = *input.Available
	}
	if input.ID != nil {
		book.ID = *input.ID
	}

	created := s.books.Save(book)
	s.logger.Debug("book created", slog.Int64("id", created.ID))
	return created, nil
}

// UpdateBook replaces the book stored under id with input. Existence is
// checked before the fields are validated. When input leaves availability
// unset, the stored value is kept.
func (s *Service) UpdateBook(id int64, input data.BookInput) (data.Book, error) {
	if !s.books.ExistsByID(id) {
		return data.Book{}, notFound(id)
	}
	if v := checkBook(input); !v.Valid() {
		return data.Book{}, &ValidationError{Errors: v.Errors}
	}

	book := bookFromInput(input)
	if input.Available != nil {
		book.Available = *input.Available
		updated, ok := s.books.Update(id, book)
		if !ok {
			return data.Book{}, notFound(id)
		}
		return updated, nil
	}

	updated, err := s.books.Modify(id, func(current *data.Book) error {
		book.Available = current.Available
		*current = book
		return nil
	})
	if errors.Is(err, data.ErrRecordNotFound) {
		return data.Book{}, notFound(id)
	}
	return updated, err
}

// DeleteBook removes the book stored under id.
func (s *Service) DeleteBook(id int64) (bool, error) {
	if !s.books.ExistsByID(id) {
		return false, notFound(id)
	}

	deleted := s.books.DeleteByID(id)
	if deleted {
		s.logger.Info("book deleted", slog.Int64("id", id))
	}
	return deleted, nil
}

// SearchBooksByAuthor returns every book whose author contains author,
// ignoring case. A blank author is a validation error.
func (s *Service) SearchBooksByAuthor(author string) ([]data.Book, error) {
	v := validator.New()
	v.Check(validator.NotBlank(&author), "author", "must not be empty")
	if !v.Valid() {
		return nil, &ValidationError{Errors: v.Errors}
	}
	return s.books.FindByAuthor(author), nil
}

// GetAvailableBooks returns every book that can currently be borrowed.
func (s *Service) GetAvailableBooks() []data.Book {
	return s.books.FindAvailableBooks()
}

// BorrowBook moves the book from Available to Borrowed.
func (s *Service) BorrowBook(id int64) (data.Book, error) {
	book, err := s.setAvailability(id, false)
	if err != nil {
		return data.Book{}, err
	}
	s.logger.Info("book borrowed", slog.Int64("id", id))
	return book, nil
}

// ReturnBook moves the book from Borrowed back to Available.
func (s *Service) ReturnBook(id int64) (data.Book, error) {
	book, err := s.setAvailability(id, true)
	if err != nil {
		return data.Book{}, err
	}
	s.logger.Info("book returned", slog.Int64("id", id))
	return book, nil
}

// setAvailability performs the check and the flip under one store lock so
// two concurrent borrows cannot both observe Available.
func (s *Service) setAvailability(id int64, available bool) (data.Book, error) {
	book, err := s.books.Modify(id, func(b *data.Book) error {
		if b.Available == available {
			if available {
				return ErrAlreadyAvailable
			}
			return ErrAlreadyBorrowed
		}
		b.Available = available
		return nil
	})
	if errors.Is(err, data.ErrRecordNotFound) {
		return data.Book{}, notFound(id)
	}
	return book, err
}

// checkBook collects the failures of the fields every stored book needs.
func checkBook(input data.BookInput) *validator.Validator {
	v := validator.New()
	v.Check(validator.NotBlank(input.Title), "title", "must not be empty")
	v.Check(validator.NotBlank(input.Author), "author", "must not be empty")
	return v
}

// bookFromInput copies the bibliographic fields of input. Callers set ID and
// Available themselves.
func bookFromInput(input data.BookInput) data.Book {
	book := data.Book{
		Title:  *input.Title,
		Author: *input.Author,
	}
	if input.ISBN != nil {
		book.ISBN = *input.ISBN
	}
	if input.PublicationYear != nil {
		year := *input.PublicationYear
		book.PublicationYear = &year
	}
	return book
}
