// Package data provides the data models and database interaction logic
// for the books catalogue.
package data

import "github.com/aoideee/books-api/internal/validator"

// Bounds shared by every string field and by search queries.
const (
	MinTextLength = 3
	MaxTextLength = 255

	MinYearExclusive = 1000
	MaxYear          = 2026
)

// Book represents a single book record stored in the database.
// It maps directly to a row in the "books" table.
type Book struct {
	ID        int64   `json:"id"`         // Unique identifier assigned by the database
	Title     string  `json:"title"`      // Title of the book
	Author    string  `json:"author"`     // Author as written on the cover
	Year      int     `json:"year"`       // Year the book was published
	Publisher string  `json:"publisher"`  // Name of the publishing company
	CoverPath *string `json:"cover_path"` // Location of the uploaded cover, null until one is uploaded
}

// CreateBookInput holds the fields a client must supply when creating a new book.
// All fields are required.
type CreateBookInput struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      int    `json:"year"`
	Publisher string `json:"publisher"`
}

// UpdateBookInput holds the fields a client may supply when partially updating a book.
// Every field is a pointer so we can tell "not provided" (nil) apart from a
// supplied value. A JSON null also decodes to nil and leaves the field as-is.
type UpdateBookInput struct {
	Title     *string `json:"title"`
	Author    *string `json:"author"`
	Year      *int    `json:"year"`
	Publisher *string `json:"publisher"`
}

// Apply copies every supplied field of input onto book.
func (input UpdateBookInput) Apply(book *Book) {
	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.Author != nil {
		book.Author = *input.Author
	}
	if input.Year != nil {
		book.Year = *input.Year
	}
	if input.Publisher != nil {
		book.Publisher = *input.Publisher
	}
}

// ValidateBook checks every writable field of book.
func ValidateBook(v *validator.Validator, book *Book) {
	validateText(v, "title", book.Title)
	validateText(v, "author", book.Author)
	validateYear(v, book.Year)
	validateText(v, "publisher", book.Publisher)
}

// ValidateUpdate checks only the fields present in input.
func ValidateUpdate(v *validator.Validator, input UpdateBookInput) {
	if input.Title != nil {
		validateText(v, "title", *input.Title)
	}
	if input.Author != nil {
		validateText(v, "author", *input.Author)
	}
	if input.Year != nil {
		validateYear(v, *input.Year)
	}
	if input.Publisher != nil {
		validateText(v, "publisher", *input.Publisher)
	}
}

// ValidateQuery checks a search string passed as the q parameter.
func ValidateQuery(v *validator.Validator, q string) {
	validateText(v, "q", q)
}

func validateText(v *validator.Validator, key, value string) {
	v.Check(value != "", key, "must be provided")
	v.Check(validator.LengthBetween(value, MinTextLength, MaxTextLength), key,
		"must be between 3 and 255 characters long")
}

func validateYear(v *validator.Validator, year int) {
	v.Check(year > MinYearExclusive, "year", "must be greater than 1000")
	v.Check(year <= MaxYear, "year", "must not be later than 2026")
}
