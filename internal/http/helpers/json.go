package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
)

const MaxBodyBytes = 1 << 20

var (
	ErrNotJSON      = errors.New("content type is not application/json")
	ErrBodyTooLarge = errors.New("request body too large")
)

// ReadJSONBody valida Content-Type y lee el body limitado a 1MB.
// Sin Content-Type el body se acepta y se parsea igual; un Content-Type que no
// es JSON es ErrNotJSON (invalid_payload para el login), no "payload faltante".
// Un body vacío no es error: el caller decide si eso es "payload faltante".
func ReadJSONBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			return nil, ErrNotJSON
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	b, err := io.ReadAll(r.Body)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, ErrBodyTooLarge
		}
		return nil, err
	}
	return bytes.TrimSpace(b), nil
}

// IsNullOrEmpty reporta si el body no trae payload (vacío o literal null).
func IsNullOrEmpty(b []byte) bool {
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

// WriteJSON escribe una respuesta JSON estándar.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteRawJSON escribe bytes ya serializados.
func WriteRawJSON(w http.ResponseWriter, status int, b []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
