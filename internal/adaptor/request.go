package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"travel-agency/internal/dto/request"
	"travel-agency/pkg/apperror"
	"travel-agency/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// multipart parts above this stay on disk
const multipartMemory = 8 << 20

var errBadBody = errors.New("invalid request body")

// fieldKind tells formToJSON how to encode a multipart form value
type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
	kindBool
	kindJSON
	kindList // repeated values or one JSON array
)

type formSpec map[string]fieldKind

var indexedGalleryField = regexp.MustCompile(`^existingGalleryImages\[(\d+)\]\[imageUrl\]$`)

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// decodeBody fills dst from a JSON body or, for multipart requests, from the
// form values described by kinds. Absent form fields stay absent in dst.
func decodeBody(r *http.Request, dst any, kinds formSpec) error {
	if !isMultipart(r) {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return fmt.Errorf("%w: %v", errBadBody, err)
		}
		return nil
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	raw, err := formToJSON(r.MultipartForm.Value, kinds)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

func formToJSON(form url.Values, kinds formSpec) ([]byte, error) {
	out := make(map[string]json.RawMessage, len(kinds))

	for field, kind := range kinds {
		values, ok := form[field]
		if !ok || len(values) == 0 {
			continue
		}
		value := strings.TrimSpace(values[0])

		switch kind {
		case kindString:
			out[field], _ = json.Marshal(values[0])

		case kindNumber:
			if value == "" {
				continue
			}
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, apperror.Field(field, "Must be a number")
			}
			out[field], _ = json.Marshal(n)

		case kindBool:
			if value == "" {
				continue
			}
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, apperror.Field(field, "Must be true or false")
			}
			out[field], _ = json.Marshal(b)

		case kindJSON:
			if !json.Valid([]byte(value)) {
				return nil, apperror.Field(field, "Must be valid JSON")
			}
			out[field] = json.RawMessage(value)

		case kindList:
			if len(values) == 1 && strings.HasPrefix(value, "[") {
				if !json.Valid([]byte(value)) {
					return nil, apperror.Field(field, "Must be a JSON array")
				}
				out[field] = json.RawMessage(value)
				continue
			}
			out[field], _ = json.Marshal(values)
		}
	}

	// existingGalleryImages[0][imageUrl]=... style keep list
	if _, ok := out["existingGalleryImages"]; !ok {
		if images := indexedGalleryImages(form); images != nil {
			out["existingGalleryImages"], _ = json.Marshal(images)
		}
	}

	return json.Marshal(out)
}

func indexedGalleryImages(form url.Values) []request.GalleryImageRequest {
	type indexed struct {
		idx int
		url string
	}
	var found []indexed
	for key, values := range form {
		m := indexedGalleryField.FindStringSubmatch(key)
		if m == nil || len(values) == 0 {
			continue
		}
		idx, _ := strconv.Atoi(m[1])
		found = append(found, indexed{idx: idx, url: strings.TrimSpace(values[0])})
	}
	if len(found) == 0 {
		return nil
	}

	sort.Slice(found, func(i, j int) bool { return found[i].idx < found[j].idx })
	images := make([]request.GalleryImageRequest, 0, len(found))
	for _, f := range found {
		images = append(images, request.GalleryImageRequest{ImageURL: f.url})
	}
	return images
}

// formFile returns nil when the request has no file under field
func formFile(r *http.Request, field string, maxBytes int64) (*request.FileUpload, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return nil, nil
	}
	return readFileHeader(r.MultipartForm.File[field][0], field, maxBytes)
}

func formFiles(r *http.Request, field string, maxBytes int64) ([]request.FileUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	files := make([]request.FileUpload, 0, len(headers))
	for _, fh := range headers {
		file, err := readFileHeader(fh, field, maxBytes)
		if err != nil {
			return nil, err
		}
		files = append(files, *file)
	}
	return files, nil
}

func readFileHeader(fh *multipart.FileHeader, field string, maxBytes int64) (*request.FileUpload, error) {
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, apperror.Field(field, fmt.Sprintf("%s exceeds %d bytes", fh.Filename, maxBytes))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return &request.FileUpload{
		FileName:    fh.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func pathID(r *http.Request) (int64, error) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		return 0, apperror.Field("id", "Must be a positive integer")
	}
	return id, nil
}

func pageQuery(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:  utils.ParseInt(query.Get("page"), utils.DefaultPage),
		Limit: utils.ParseInt(query.Get("limit"), utils.DefaultLimit),
	}
}

// limitBody caps the request body: files * per-file limit plus room for form fields
func limitBody(w http.ResponseWriter, r *http.Request, maxBytes int64, files int) {
	if maxBytes <= 0 {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes*int64(files)+1<<20)
}
