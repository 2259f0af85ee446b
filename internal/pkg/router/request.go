package router

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

// maxMultipartMemory bounds the in-memory portion of multipart parsing.
const maxMultipartMemory = 16 << 20 // 16MB

// Request wraps http.Request with decode helpers for inbound handlers.
type Request struct {
	*http.Request
}

// Param returns the named path parameter.
func (r *Request) Param(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

// ParamInt64 parses the named path parameter as an int64.
func (r *Request) ParamInt64(key string) (int64, error) {
	v, err := strconv.ParseInt(r.Param(key), 10, 64)
	if err != nil {
		return 0, goerror.NewInvalidFormat("path parameter " + key + " must be an integer")
	}
	return v, nil
}

// Query returns the trimmed query value for key.
func (r *Request) Query(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// QueryInt64 parses the query value for key, returning def when absent.
func (r *Request) QueryInt64(key string, def int64) (int64, error) {
	raw := r.Query(key)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, goerror.NewInvalidFormat("query parameter " + key + " must be an integer")
	}
	return v, nil
}

// QueryBool parses the query value for key as a boolean, returning nil when
// absent.
func (r *Request) QueryBool(key string) (*bool, error) {
	raw := r.Query(key)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, goerror.NewInvalidFormat("query parameter " + key + " must be a boolean")
	}
	return &v, nil
}

// Bind decodes the JSON body into dst. Unknown fields and trailing content
// are rejected.
func (r *Request) Bind(dst any) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return goerror.NewInvalidFormat()
	}

	return nil
}

// FormValue returns the trimmed multipart form value for key. ParseForm must
// have run, which FormFiles does.
func (r *Request) FormValue(key string) string {
	return strings.TrimSpace(r.Request.FormValue(key))
}

// FormFiles parses the multipart form and returns all files uploaded under
// the given field name.
func (r *Request) FormFiles(name string) ([]*multipart.FileHeader, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return nil, goerror.NewInvalidFormat("request must be multipart/form-data")
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, goerror.NewInvalidFormat()
	}
	if r.MultipartForm == nil {
		return nil, goerror.NewInvalidFormat()
	}

	return r.MultipartForm.File[name], nil
}

// FormFile returns the first uploaded file under the given field name, or
// nil when the field is absent.
func (r *Request) FormFile(name string) (*multipart.FileHeader, error) {
	files, err := r.FormFiles(name)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	return files[0], nil
}
