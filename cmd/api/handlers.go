// cmd/api/handlers.go
// This file contains all HTTP request handlers for the books resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger, database models and cover store.
package main

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/aoideee/books-api/internal/data"
	"github.com/aoideee/books-api/internal/validator"
)

// searchBooksHandler handles GET /?q=.
// It returns up to ten books whose title or author contains q.
func (app *applicationDependencies) searchBooksHandler(w http.ResponseWriter, r *http.Request) {
	q := app.readString(r.URL.Query(), "q", "")

	v := validator.New()
	if data.ValidateQuery(v, q); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	books, err := app.models.Books.Search(r.Context(), q)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createBookHandler handles POST /add/.
// It reads a JSON body containing the new book's details, validates every
// field, inserts a record and responds with the database-assigned id.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.CreateBookInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book := &data.Book{
		Title:     input.Title,
		Author:    input.Author,
		Year:      input.Year,
		Publisher: input.Publisher,
	}

	// Reject bad input before the store is touched.
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Books.Insert(r.Context(), book)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"id": book.ID}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /delete/:id/.
// Responds 404 if no book with that ID exists.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.models.Books.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.bookNotFoundResponse(w, r, id)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"status": "success"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PUT /update/:id/.
// It reads a partial JSON body, finds the existing book, applies only the
// supplied fields and saves the whole row. Responds with the updated book.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input data.UpdateBookInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if data.ValidateUpdate(v, input); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	book, err := app.models.Books.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.bookNotFoundResponse(w, r, id)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	input.Apply(book)

	err = app.models.Books.Update(r.Context(), book)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.bookNotFoundResponse(w, r, id)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// uploadCoverHandler handles PUT /cover/:id/.
// The body is either the raw image bytes or a multipart form with a "file"
// part. The file is written to the cover store before the row is updated;
// the two steps are not atomic, so a failed row update leaves the new file
// in place.
func (app *applicationDependencies) uploadCoverHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	_, err = app.models.Books.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.bookNotFoundResponse(w, r, id)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	src, err := app.coverSource(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	path, err := app.covers.Save(id, src)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	book, err := app.models.Books.SetCover(r.Context(), id, path)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.bookNotFoundResponse(w, r, id)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// coverSource returns a reader over the uploaded file. Multipart bodies are
// streamed part by part so nothing is buffered in memory or on disk first.
func (app *applicationDependencies) coverSource(r *http.Request) (io.Reader, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, nil
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, errors.New(`multipart body must contain a "file" part`)
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() == "file" {
			return part, nil
		}
	}
}

// authorCountHandler handles GET /author_count/?q=.
// It responds with a JSON object mapping each matching author to its book count.
func (app *applicationDependencies) authorCountHandler(w http.ResponseWriter, r *http.Request) {
	q := app.readString(r.URL.Query(), "q", "")

	v := validator.New()
	if data.ValidateQuery(v, q); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	counts, err := app.models.Books.CountByAuthor(r.Context(), q)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, counts, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
