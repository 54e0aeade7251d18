package marketplace_api_client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"

	"joytop-admin-service/internal/core/domain"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodePayload выбирает формат тела: multipart при наличии файлов, иначе JSON.
func encodePayload(payload domain.Payload) (io.Reader, string, error) {
	if payload.HasFiles() {
		return encodeMultipart(payload)
	}

	fields := payload.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal payload: %w", err)
	}
	return bytes.NewReader(body), "application/json", nil
}

func encodeMultipart(payload domain.Payload) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	keys := make([]string, 0, len(payload.Fields))
	for k := range payload.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value, ok, err := formatFormValue(payload.Fields[key])
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode form field %q: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := w.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %q: %w", key, err)
		}
	}

	for _, file := range payload.Files {
		part, err := createFilePart(w, file)
		if err != nil {
			return nil, "", err
		}
		if file.Content != nil {
			if _, err := io.Copy(part, file.Content); err != nil {
				return nil, "", fmt.Errorf("failed to copy file %q: %w", file.FileName, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func createFilePart(w *multipart.Writer, file domain.FileField) (io.Writer, error) {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(file.FieldName), quoteEscaper.Replace(file.FileName)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part %q: %w", file.FieldName, err)
	}
	return part, nil
}

// formatFormValue: скаляры как строки, вложенные структуры как JSON.
func formatFormValue(v any) (string, bool, error) {
	switch val := v.(type) {
	case string:
		// пустая строка в форме - осознанная очистка поля
		return val, true, nil
	case map[string]any, []any, []string, []int64, []int:
		encoded, err := json.Marshal(v)
		if err != nil {
			return "", false, err
		}
		return string(encoded), true, nil
	}
	value, ok := formatScalar(v)
	return value, ok, nil
}
