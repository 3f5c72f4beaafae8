package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Body is an encoded request payload.
type Body interface {
	Encode() (contentType string, r io.Reader, err error)
}

type jsonBody struct{ v any }

// JSON encodes v as application/json.
func JSON(v any) Body { return jsonBody{v: v} }

func (b jsonBody) Encode() (string, io.Reader, error) {
	data, err := json.Marshal(b.v)
	if err != nil {
		return "", nil, fmt.Errorf("encode json body: %w", err)
	}
	return "application/json", bytes.NewReader(data), nil
}

// File is one uploaded file forwarded in a multipart body.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Content     io.Reader
}

type multipartBody struct {
	fields map[string]string
	files  []File
}

// Multipart encodes fields and files as multipart/form-data.
// Fields are written in key order so bodies are reproducible.
func Multipart(fields map[string]string, files ...File) Body {
	return multipartBody{fields: fields, files: files}
}

func (b multipartBody) Encode() (string, io.Reader, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(b.fields))
	for k := range b.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := mw.WriteField(k, b.fields[k]); err != nil {
			return "", nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}

	for _, f := range b.files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(f.Field), quoteEscaper.Replace(f.Filename)))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return "", nil, fmt.Errorf("create part %s: %w", f.Field, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return "", nil, fmt.Errorf("copy file %s: %w", f.Filename, err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", nil, err
	}
	return mw.FormDataContentType(), &buf, nil
}
