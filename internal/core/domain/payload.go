package domain

import "io"

// FileField - бинарное поле полезной нагрузки (например, картинка баннера).
type FileField struct {
	FieldName   string
	FileName    string
	ContentType string
	Content     io.Reader
}

// Payload - тело create/update/patch. Если есть файлы, запрос уходит как multipart.
type Payload struct {
	Fields map[string]any
	Files  []FileField
}

func (p Payload) HasFiles() bool {
	return len(p.Files) > 0
}
