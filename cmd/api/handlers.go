// cmd/api/handlers.go
// This file contains all HTTP request handlers for the books resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger and the catalog service.
package main

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/library-catalog/internal/data"
)

// healthcheckHandler handles GET /api/healthcheck.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	env := envelope{
		"status": "available",
		"system_info": map[string]string{
			"environment": app.config.environment,
			"version":     appVersion,
		},
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listBooksHandler handles GET /api/books.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, app.catalog.GetAllBooks(), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createBookHandler handles POST /api/books.
// It responds with the stored book, including its assigned ID, and 201 Created.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	// Decode the incoming JSON body into the input struct. readJSON enforces
	// the size limit, rejects unknown fields, and ensures a single value.
	var input data.BookInput
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// New books always get a generated id.
	input.ID = nil

	book, err := app.catalog.CreateBook(input)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	// Point clients at the new resource.
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/api/books/%d", book.ID))

	err = app.writeJSON(w, http.StatusCreated, book, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// collectionPaths are the read-only collection endpoints that share the
// /api/books/:id route with single books.
var collectionPaths = map[string]bool{
	"search":    true,
	"available": true,
}

// rejectCollectionPath answers 405 when a non-GET request targets one of the
// collectionPaths, and reports whether it did so.
func (app *applicationDependencies) rejectCollectionPath(w http.ResponseWriter, r *http.Request) bool {
	if !collectionPaths[httprouter.ParamsFromContext(r.Context()).ByName("id")] {
		return false
	}
	w.Header().Set("Allow", http.MethodGet)
	app.methodNotAllowedResponse(w, r)
	return true
}

// showBookHandler handles GET /api/books/:id, and also GET /api/books/search
// and GET /api/books/available, which share the route.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	// Dispatch the collection endpoints before treating the segment as an id.
	switch httprouter.ParamsFromContext(r.Context()).ByName("id") {
	case "search":
		app.searchBooksHandler(w, r)
		return
	case "available":
		app.listAvailableBooksHandler(w, r)
		return
	}

	// readIDParam extracts and validates the :id URL parameter.
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Absence is a normal outcome of the lookup, answered with 404.
	book, ok := app.catalog.GetBookByID(id)
	if !ok {
		app.notFoundResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PUT /api/books/:id.
// The body replaces the stored book; the id in the path always wins.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	if app.rejectCollectionPath(w, r) {
		return
	}

	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input data.BookInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// UpdateBook checks existence before validating the fields, so an
	// unknown id is a 404 even when the body is also invalid.
	book, err := app.catalog.UpdateBook(id, input)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /api/books/:id and responds 204 No Content.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	if app.rejectCollectionPath(w, r) {
		return
	}

	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	deleted, err := app.catalog.DeleteBook(id)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}
	if !deleted {
		// Removed by a concurrent request after the existence check.
		app.notFoundResponse(w, r)
		return
	}

	// 204 carries no body.
	w.WriteHeader(http.StatusNoContent)
}

// searchBooksHandler handles GET /api/books/search?author=X.
func (app *applicationDependencies) searchBooksHandler(w http.ResponseWriter, r *http.Request) {
	// A missing parameter reads as "", which the catalog rejects as blank.
	author := app.readString(r.URL.Query(), "author", "")

	books, err := app.catalog.SearchBooksByAuthor(author)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, books, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listAvailableBooksHandler handles GET /api/books/available.
func (app *applicationDependencies) listAvailableBooksHandler(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, app.catalog.GetAvailableBooks(), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// borrowBookHandler handles PUT /api/books/:id/borrow.
func (app *applicationDependencies) borrowBookHandler(w http.ResponseWriter, r *http.Request) {
	app.transitionHandler(w, r, app.catalog.BorrowBook)
}

// returnBookHandler handles PUT /api/books/:id/return.
func (app *applicationDependencies) returnBookHandler(w http.ResponseWriter, r *http.Request) {
	app.transitionHandler(w, r, app.catalog.ReturnBook)
}

// transitionHandler runs one availability transition for the book in the path
// and writes the updated book. Not-found maps to 404, an invalid transition to 409.
func (app *applicationDependencies) transitionHandler(w http.ResponseWriter, r *http.Request, transition func(int64) (data.Book, error)) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := transition(id)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
