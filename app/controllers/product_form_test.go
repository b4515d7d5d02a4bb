package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildForm(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, data := range files {
		fw, err := mw.CreateFormFile(field, field+".jpg")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestParseProductFormBuffersAllSlots(t *testing.T) {
	body, contentType := buildForm(t,
		map[string]string{"title": "Mug", "description": "Ceramic", "price": "500"},
		map[string][]byte{"file1": []byte("aaa"), "file3": []byte("ccc")},
	)

	r := httptest.NewRequest("POST", "/api/products", body)
	r.Header.Set("Content-Type", contentType)

	form, files, err := parseProductForm(r)
	require.NoError(t, err)

	assert.Equal(t, "Mug", form.title)
	assert.Equal(t, "Ceramic", form.description)
	assert.Equal(t, 500, form.price)

	require.NotNil(t, files[0])
	assert.Equal(t, []byte("aaa"), files[0].Data)
	assert.Nil(t, files[1], "missing slot stays empty")
	require.NotNil(t, files[2])
	assert.Equal(t, []byte("ccc"), files[2].Data)
}

func TestParseProductFormRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]string
	}{
		{"missing title", map[string]string{"price": "500"}},
		{"missing price", map[string]string{"title": "Mug"}},
		{"negative price", map[string]string{"title": "Mug", "price": "-1"}},
		{"non-numeric price", map[string]string{"title": "Mug", "price": "cheap"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, contentType := buildForm(t, tc.fields, nil)
			r := httptest.NewRequest("POST", "/api/products", body)
			r.Header.Set("Content-Type", contentType)

			_, _, err := parseProductForm(r)
			assert.Error(t, err)
		})
	}
}
