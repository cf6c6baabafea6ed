// internal/data/models.go
package data

import (
	"cmp"
	"errors"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// Models is a top-level container that groups all storage types together.
// It is passed around the application via applicationDependencies.
type Models struct {
	Books *BookStore // Holds every book record for the lifetime of the process
}

// NewModels constructs a Models value whose BookStore is filled with SeedBooks.
// Call this once during application startup.
func NewModels() Models {
	return Models{
		Books: NewBookStore(SeedBooks()...),
	}
}

// ErrRecordNotFound is returned when an operation targets an id that is not stored.
var ErrRecordNotFound = errors.New("record not found")

// BookStore is the in-memory collection of books plus identifier generation.
// All methods are safe for concurrent use and hand out copies only.
type BookStore struct {
	mu     sync.RWMutex
	books  map[int64]Book
	lastID atomic.Int64 // highest id ever issued or stored
}

// NewBookStore returns a store holding seed. The id counter starts above the
// highest seeded id.
func NewBookStore(seed ...Book) *BookStore {
	s := &BookStore{books: make(map[int64]Book, len(seed))}
	for _, b := range seed {
		s.put(b)
	}
	return s
}

// put stores b under its id and keeps the counter ahead of it.
// The caller must hold the write lock (or own s exclusively).
func (s *BookStore) put(b Book) Book {
	if b.ID > s.lastID.Load() {
		s.lastID.Store(b.ID)
	}
	s.books[b.ID] = b.clone()
	return b.clone()
}

// FindAll returns a snapshot of every stored book ordered by id.
func (s *BookStore) FindAll() []Book {
	return s.filter(func(Book) bool { return true })
}

// FindByID returns the book stored under id. The boolean is false if there is none.
func (s *BookStore) FindByID(id int64) (Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.books[id]
	if !ok {
		return Book{}, false
	}
	return b.clone(), true
}

// Save inserts book. A zero ID is replaced with the next generated identifier;
// a non-zero ID overwrites whatever is stored under it.
func (s *BookStore) Save(book Book) Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	if book.ID == 0 {
		book.ID = s.lastID.Add(1)
	}
	return s.put(book)
}

// Update replaces the book stored under id with book, forcing book.ID to id.
// The boolean is false, and nothing is written, if id is not stored.
func (s *BookStore) Update(id int64, book Book) (Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return Book{}, false
	}
	book.ID = id
	return s.put(book), true
}

// Modify runs fn on a copy of the book stored under id while holding the
// write lock, and stores the result if fn returns nil. It returns
// ErrRecordNotFound when id is not stored, and fn's error unchanged otherwise.
func (s *BookStore) Modify(id int64, fn func(b *Book) error) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.books[id]
	if !ok {
		return Book{}, ErrRecordNotFound
	}

	b := current.clone()
	if err := fn(&b); err != nil {
		return Book{}, err
	}
	b.ID = id
	return s.put(b), nil
}

// DeleteByID removes the book stored under id and reports whether it existed.
func (s *BookStore) DeleteByID(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return false
	}
	delete(s.books, id)
	return true
}

// ExistsByID reports whether a book is stored under id.
func (s *BookStore) ExistsByID(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.books[id]
	return ok
}

// FindByAuthor returns every book whose author contains author, ignoring case.
func (s *BookStore) FindByAuthor(author string) []Book {
	needle := strings.ToLower(author)
	return s.filter(func(b Book) bool {
		return strings.Contains(strings.ToLower(b.Author), needle)
	})
}

// FindAvailableBooks returns every book that is not currently borrowed.
func (s *BookStore) FindAvailableBooks() []Book {
	return s.filter(func(b Book) bool { return b.Available })
}

// Len returns the number of stored books.
func (s *BookStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}

func (s *BookStore) filter(keep func(Book) bool) []Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := []Book{}
	for _, b := range s.books {
		if keep(b) {
			books = append(books, b.clone())
		}
	}
	slices.SortFunc(books, func(a, b Book) int { return cmp.Compare(a.ID, b.ID) })
	return books
}
