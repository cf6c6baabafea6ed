// cmd/api/helpers.go
// This file contains general-purpose helper functions for the application.
// Error-response helpers live in errors.go; only non-error utilities are here.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
)

// json is a drop-in replacement for encoding/json.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// strictJSON decodes request bodies: json plus rejection of unknown fields.
var strictJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	DisallowUnknownFields:  true,
}.Froze()

// maxBodyBytes caps request bodies at 1 MB.
const maxBodyBytes = 1_048_576

// envelope wraps error and status payloads, e.g. {"error": "..."}.
// Book resources are written bare so the wire shape stays {id, title, ...}.
type envelope map[string]any

// readIDParam extracts and validates the ":id" URL parameter added by httprouter.
// Returns an error if the value is missing, non-numeric, or less than 1.
func (app *applicationDependencies) readIDParam(r *http.Request) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())
	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}

// readString reads a string query parameter from qs, returning defaultValue
// if the key is absent or empty.
func (app *applicationDependencies) readString(qs url.Values, key, defaultValue string) string {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	return s
}

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type to "application/json", writes the status code, and
// streams the body to the client.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	// jsoniter only accepts spaces as indentation.
	js, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return err
	}
	js = append(js, '\n') // Trailing newline makes curl output nicer.

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

// readJSON decodes a single JSON value from the request body into dst.
// It enforces the body size limit, rejects unknown fields, and ensures the
// body contains exactly one JSON value.
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	// Read the whole (capped) body up front so the size limit surfaces as
	// *http.MaxBytesError instead of a decoder message.
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		}
		return err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return errors.New("body must not be empty")
	}

	// Valid catches truncated values, which Unmarshal alone lets through.
	if !json.Valid(body) {
		return errors.New("body contains badly-formed JSON")
	}

	// strictJSON also fails on anything left after the first value.
	err = strictJSON.Unmarshal(body, dst)
	if err != nil {
		return fmt.Errorf("body contains invalid JSON: %w", err)
	}
	return nil
}
