package adaptor

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"travel-agency/internal/dto/request"
	"travel-agency/pkg/apperror"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for http.DetectContentType
var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

type formPart struct {
	field, fileName, contentType string
	data                         []byte
}

func multipartRequest(t *testing.T, method, target string, values url.Values, files ...formPart) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, vals := range values {
		for _, v := range vals {
			require.NoError(t, mw.WriteField(key, v))
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.fileName+`"`)
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestDecodeBody_MultipartDestination(t *testing.T) {
	values := url.Values{
		"title":        {"Torres del Paine"},
		"activityType": {"trekking", "camping"},
		"price":        {"1250.5"},
		"isSpecial":    {"true"},
		"clearGallery": {"false"},
		"itinerary":    {`[{"day":"Day 1","title":"Arrival","details":[{"detail":"Transfer"}]}]`},
	}
	values.Set("existingGalleryImages[1][imageUrl]", "https://cdn.example.com/b.jpg")
	values.Set("existingGalleryImages[0][imageUrl]", "https://cdn.example.com/a.jpg")
	req := multipartRequest(t, http.MethodPatch, "/api/destinations/5", values)

	var dst request.UpdateDestinationRequest
	require.NoError(t, decodeBody(req, &dst, destinationForm))

	require.NotNil(t, dst.Title)
	assert.Equal(t, "Torres del Paine", *dst.Title)
	require.NotNil(t, dst.ActivityType)
	assert.Equal(t, []string{"trekking", "camping"}, *dst.ActivityType)
	require.NotNil(t, dst.Price)
	assert.InDelta(t, 1250.5, *dst.Price, 0.0001)
	require.NotNil(t, dst.IsSpecial)
	assert.True(t, *dst.IsSpecial)
	assert.False(t, dst.ClearGallery)
	require.NotNil(t, dst.Itinerary)
	assert.Len(t, *dst.Itinerary, 1)

	require.NotNil(t, dst.ExistingGalleryImages)
	assert.Equal(t, []request.GalleryImageRequest{
		{ImageURL: "https://cdn.example.com/a.jpg"},
		{ImageURL: "https://cdn.example.com/b.jpg"},
	}, *dst.ExistingGalleryImages)

	// absent fields stay nil so the update leaves them alone
	assert.Nil(t, dst.Description)
	assert.Nil(t, dst.IsRecommended)
}

func TestDecodeBody_ActivityTypeAsJSONArray(t *testing.T) {
	req := multipartRequest(t, http.MethodPost, "/", url.Values{"activityType": {`["culture","food"]`}})

	var dst request.CreateDestinationRequest
	require.NoError(t, decodeBody(req, &dst, destinationForm))
	assert.Equal(t, []string{"culture", "food"}, dst.ActivityType)
}

func TestDecodeBody_FormErrors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"number", "price", "cheap"},
		{"bool", "isSpecial", "maybe"},
		{"json", "itinerary", "[{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := multipartRequest(t, http.MethodPost, "/", url.Values{tt.field: {tt.value}})

			var dst request.CreateDestinationRequest
			err := decodeBody(req, &dst, destinationForm)

			var verr *apperror.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestDecodeBody_JSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Sunrise","subtitle":"x","location":"y"}`))
	req.Header.Set("Content-Type", "application/json")

	var dst request.CreateSliderRequest
	require.NoError(t, decodeBody(req, &dst, sliderForm))
	assert.Equal(t, "Sunrise", dst.Title)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
	req.Header.Set("Content-Type", "application/json")
	assert.ErrorIs(t, decodeBody(req, &dst, sliderForm), errBadBody)
}

func TestFormFile(t *testing.T) {
	req := multipartRequest(t, http.MethodPost, "/", nil,
		formPart{field: "image", fileName: "hero.png", contentType: "application/octet-stream", data: pngHeader})
	require.NoError(t, req.ParseMultipartForm(multipartMemory))

	file, err := formFile(req, "image", 1<<20)
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, "hero.png", file.FileName)
	assert.Equal(t, "image/png", file.ContentType, "octet-stream gets sniffed")

	missing, err := formFile(req, "avatar", 1<<20)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	_, err = formFile(req, "image", 4)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestFormFile_JSONRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	file, err := formFile(req, "image", 1<<20)
	assert.NoError(t, err)
	assert.Nil(t, file)
}

func TestPathID(t *testing.T) {
	withID := func(id string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	id, err := pathID(withID("42"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"abc", "0", "-3", ""} {
		_, err := pathID(withID(bad))
		assert.ErrorIs(t, err, apperror.ErrValidation, bad)
	}
}

func TestPageQuery(t *testing.T) {
	page := pageQuery(httptest.NewRequest(http.MethodGet, "/?page=3&limit=25", nil))
	assert.Equal(t, request.PaginatedRequest{Page: 3, Limit: 25}, page)

	page = pageQuery(httptest.NewRequest(http.MethodGet, "/?page=x", nil))
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
}
