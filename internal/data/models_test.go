package data

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *BookStore {
	t.Helper()
	return NewModels().Books
}

func TestBookStore_SeedAndCounter(t *testing.T) {
	s := seededStore(t)

	assert.Equal(t, 3, s.Len())

	saved := s.Save(Book{Title: "X", Author: "Y", Available: true})
	assert.Equal(t, int64(4), saved.ID, "first generated id follows the seed")

	next := s.Save(Book{Title: "Z", Author: "W"})
	assert.Equal(t, int64(5), next.ID)
}

func TestBookStore_SaveThenFindByID(t *testing.T) {
	s := NewBookStore()
	year := 2001

	saved := s.Save(Book{Title: "Dune", Author: "Frank Herbert", ISBN: "isbn", PublicationYear: &year, Available: true})

	found, ok := s.FindByID(saved.ID)
	require.True(t, ok)
	assert.Equal(t, saved, found)
	assert.Equal(t, "Dune", found.Title)
	assert.Equal(t, "Frank Herbert", found.Author)
	assert.Equal(t, "isbn", found.ISBN)
	require.NotNil(t, found.PublicationYear)
	assert.Equal(t, 2001, *found.PublicationYear)
}

func TestBookStore_SaveWithIDOverwritesAndIsNeverReissued(t *testing.T) {
	s := NewBookStore(SeedBooks()...)

	s.Save(Book{ID: 2, Title: "Replaced", Author: "Someone"})
	b, ok := s.FindByID(2)
	require.True(t, ok)
	assert.Equal(t, "Replaced", b.Title)

	s.Save(Book{ID: 10, Title: "Far", Author: "Away"})
	next := s.Save(Book{Title: "Next", Author: "One"})
	assert.Equal(t, int64(11), next.ID)
}

func TestBookStore_IDsAreNotReusedAfterDelete(t *testing.T) {
	s := seededStore(t)

	b := s.Save(Book{Title: "X", Author: "Y"})
	require.True(t, s.DeleteByID(b.ID))

	again := s.Save(Book{Title: "X", Author: "Y"})
	assert.Equal(t, b.ID+1, again.ID)
}

func TestBookStore_FindAllReturnsSnapshot(t *testing.T) {
	s := seededStore(t)

	books := s.FindAll()
	require.Len(t, books, 3)
	assert.Equal(t, []int64{1, 2, 3}, ids(books))

	books[0].Title = "mutated"
	*books[0].PublicationYear = 1

	fresh, ok := s.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, "The Great Gatsby", fresh.Title)
	assert.Equal(t, 1925, *fresh.PublicationYear)
	assert.Len(t, s.FindAll(), 3)
}

func TestBookStore_FindByIDMissing(t *testing.T) {
	s := seededStore(t)

	_, ok := s.FindByID(42)
	assert.False(t, ok)
}

func TestBookStore_Update(t *testing.T) {
	s := seededStore(t)

	updated, ok := s.Update(1, Book{ID: 77, Title: "New", Author: "Author", Available: true})
	require.True(t, ok)
	assert.Equal(t, int64(1), updated.ID, "path id wins over payload id")

	stored, _ := s.FindByID(1)
	assert.Equal(t, "New", stored.Title)
	assert.False(t, s.ExistsByID(77))

	_, ok = s.Update(42, Book{Title: "Nope", Author: "Nobody"})
	assert.False(t, ok)
	assert.False(t, s.ExistsByID(42))
}

func TestBookStore_DeleteByID(t *testing.T) {
	s := seededStore(t)

	assert.True(t, s.DeleteByID(1))
	assert.False(t, s.ExistsByID(1))
	_, ok := s.FindByID(1)
	assert.False(t, ok)

	assert.False(t, s.DeleteByID(1), "second delete reports absence")
}

func TestBookStore_FindByAuthor(t *testing.T) {
	s := seededStore(t)

	got := s.FindByAuthor("lee")
	require.Len(t, got, 1)
	assert.Equal(t, "Harper Lee", got[0].Author)

	assert.Len(t, s.FindByAuthor("GEORGE"), 1)
	assert.Empty(t, s.FindByAuthor("tolkien"))
	assert.NotNil(t, s.FindByAuthor("tolkien"), "empty result is an empty slice")
}

func TestBookStore_FindAvailableBooks(t *testing.T) {
	s := seededStore(t)

	assert.Equal(t, []int64{1, 2}, ids(s.FindAvailableBooks()))
}

func TestBookStore_Modify(t *testing.T) {
	s := seededStore(t)

	b, err := s.Modify(1, func(b *Book) error {
		b.Available = false
		b.ID = 500
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.ID)
	assert.False(t, b.Available)

	errRejected := errors.New("rejected")
	_, err = s.Modify(2, func(b *Book) error {
		b.Title = "should not stick"
		return errRejected
	})
	assert.ErrorIs(t, err, errRejected)
	unchanged, _ := s.FindByID(2)
	assert.Equal(t, "To Kill a Mockingbird", unchanged.Title)

	_, err = s.Modify(42, func(*Book) error { return nil })
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestBookStore_ConcurrentSavesGetDistinctIDs(t *testing.T) {
	s := seededStore(t)

	const workers = 50
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		got = make(map[int64]bool)
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b := s.Save(Book{Title: "T", Author: "A"})
			mu.Lock()
			got[b.ID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, got, workers)
	assert.Equal(t, 3+workers, s.Len())
}

func ids(books []Book) []int64 {
	out := make([]int64, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}
