// cmd/api/routes.go
package main

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the router wrapped in the
// middleware chain (outermost first):
//
//	recoverPanic → requestID → logRequest → rateLimit → router
//
// Endpoints:
//
//	GET    /api/healthcheck         – application status
//	GET    /api/books               – list all books
//	POST   /api/books               – create a book
//	GET    /api/books/:id           – retrieve a book by ID
//	PUT    /api/books/:id           – replace a book
//	DELETE /api/books/:id           – delete a book
//	GET    /api/books/search?author – search by author substring
//	GET    /api/books/available     – list books that can be borrowed
//	PUT    /api/books/:id/borrow    – mark a book as borrowed
//	PUT    /api/books/:id/return    – mark a book as available again
//
// httprouter does not allow /api/books/search or /api/books/available next to
// /api/books/:id, so showBookHandler dispatches those two itself.
//
// Background work started by the middleware stops when ctx is done.
func (app *applicationDependencies) routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/api/healthcheck", app.healthcheckHandler)

	router.HandlerFunc(http.MethodGet, "/api/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/api/books", app.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/api/books/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodPut, "/api/books/:id", app.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/api/books/:id", app.deleteBookHandler)
	router.HandlerFunc(http.MethodPut, "/api/books/:id/borrow", app.borrowBookHandler)
	router.HandlerFunc(http.MethodPut, "/api/books/:id/return", app.returnBookHandler)

	// recoverPanic is outermost so it also catches panics in the middleware.
	return app.recoverPanic(app.requestID(app.logRequest(app.rateLimit(ctx, router))))
}
