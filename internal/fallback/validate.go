package fallback

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"bookreview/internal/model"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError names one failed rule on a record.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Problems lists what is wrong with b. A valid book yields nil.
func Problems(b model.Book) []FieldError {
	err := validate.Struct(b)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "book", Message: err.Error()}}
	}

	var out []FieldError
	for _, fe := range verrs {
		field := fe.Field()
		msg := fmt.Sprintf("%s is invalid", field)
		if fe.Tag() == "required" {
			msg = fmt.Sprintf("%s is required", field)
		}
		out = append(out, FieldError{
			Field:   strings.ToLower(field[:1]) + field[1:],
			Message: msg,
		})
	}
	return out
}

// IsValidRecord reports whether record carries an id, a name, an author and
// a status. It accepts a Book, a *Book or a raw object; a raw object may use
// title in place of name.
func IsValidRecord(record any) bool {
	switch r := record.(type) {
	case model.Book:
		return Problems(r) == nil
	case *model.Book:
		return r != nil && Problems(*r) == nil
	case map[string]any:
		if r == nil {
			return false
		}
		for _, key := range []string{"id", "author", "status"} {
			if r[key] == nil {
				return false
			}
		}
		return r["name"] != nil || r["title"] != nil
	default:
		return false
	}
}

// ValidateCollection returns the valid records of candidate in order. A
// candidate that is not a sequence yields an empty collection.
func ValidateCollection(candidate any) []model.Book {
	out := []model.Book{}
	switch c := candidate.(type) {
	case []model.Book:
		for i := range c {
			if keep(i, c[i]) {
				out = append(out, c[i])
			}
		}
	case []*model.Book:
		for i, b := range c {
			if b != nil && keep(i, *b) {
				out = append(out, *b)
			} else if b == nil {
				log.Printf("[WARN] Invalid book data at %d: nil", i)
			}
		}
	case []any:
		for i, item := range c {
			if b, ok := asBook(item); ok && keep(i, b) {
				out = append(out, b)
			} else if !ok {
				log.Printf("[WARN] Invalid book data at %d: %v", i, item)
			}
		}
	default:
		log.Printf("[WARN] Expected books array, received: %T", candidate)
	}
	return out
}

func keep(i int, b model.Book) bool {
	if problems := Problems(b); problems != nil {
		log.Printf("[WARN] Invalid book data at %d (id=%q): %v", i, b.ID, problems)
		return false
	}
	return true
}

// asBook converts one element of a loosely typed sequence.
func asBook(item any) (model.Book, bool) {
	switch v := item.(type) {
	case model.Book:
		return v, true
	case *model.Book:
		if v == nil {
			return model.Book{}, false
		}
		return *v, true
	case map[string]any:
		if !IsValidRecord(v) {
			return model.Book{}, false
		}
		if _, hasName := v["name"]; !hasName {
			v = withName(v)
		}
		data, err := json.Marshal(v)
		if err != nil {
			return model.Book{}, false
		}
		var b model.Book
		if err := json.Unmarshal(data, &b); err != nil {
			return model.Book{}, false
		}
		return b, true
	default:
		return model.Book{}, false
	}
}

func withName(v map[string]any) map[string]any {
	out := make(map[string]any, len(v)+1)
	for k, val := range v {
		out[k] = val
	}
	out["name"] = v["title"]
	return out
}
