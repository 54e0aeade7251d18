package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"sort"

	"joytop-admin-service/internal/core/domain"
)

const (
	maxJSONBody   = 1 << 20
	maxUploadSize = 32 << 20

	// в multipart-запросе нестроковые поля приходят JSON-объектом в этом поле формы
	multipartPayloadField = "payload"
)

func decodeJSONBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// parsePayload читает тело мутации: JSON или multipart/form-data с файлами.
// cleanup закрывает открытые файлы и удаляет временные.
func parsePayload(r *http.Request) (domain.Payload, func(), error) {
	noop := func() {}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var fields map[string]any
		if err := decodeJSONBody(r, &fields); err != nil {
			return domain.Payload{}, noop, err
		}
		return domain.Payload{Fields: fields}, noop, nil
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return domain.Payload{}, noop, fmt.Errorf("invalid multipart body: %w", err)
	}
	form := r.MultipartForm

	var opened []multipart.File
	cleanup := func() {
		for _, f := range opened {
			_ = f.Close()
		}
		_ = form.RemoveAll()
	}

	fields := map[string]any{}
	if raw := form.Value[multipartPayloadField]; len(raw) > 0 && raw[0] != "" {
		if err := json.Unmarshal([]byte(raw[0]), &fields); err != nil {
			cleanup()
			return domain.Payload{}, noop, fmt.Errorf("invalid %q form field: %w", multipartPayloadField, err)
		}
		if fields == nil {
			fields = map[string]any{}
		}
	}
	for key, values := range form.Value {
		if key == multipartPayloadField || len(values) == 0 {
			continue
		}
		fields[key] = values[0]
	}

	fileFields := make([]string, 0, len(form.File))
	for name := range form.File {
		fileFields = append(fileFields, name)
	}
	sort.Strings(fileFields)

	var files []domain.FileField
	for _, name := range fileFields {
		for _, fh := range form.File[name] {
			f, err := fh.Open()
			if err != nil {
				cleanup()
				return domain.Payload{}, noop, fmt.Errorf("failed to open uploaded file %q: %w", fh.Filename, err)
			}
			opened = append(opened, f)
			files = append(files, domain.FileField{
				FieldName:   name,
				FileName:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Content:     f,
			})
		}
	}

	return domain.Payload{Fields: fields, Files: files}, cleanup, nil
}
