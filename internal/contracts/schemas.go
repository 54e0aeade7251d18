package contracts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"joytop-admin-service/internal/core/domain"
	"joytop-admin-service/internal/core/port"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	payloadsRoot = "payloads"
	// схемы регистрируются в компиляторе под этим префиксом, в сеть компилятор не ходит
	schemaURLPrefix = "mem://schemas/"
)

// PayloadValidator проверяет тела мутаций по JSON-схемам
// payloads/<resource>/<operation>.json.
type PayloadValidator struct {
	compiled map[string]*jsonschema.Schema
}

var _ port.PayloadValidatorPort = (*PayloadValidator)(nil)

// NewPayloadValidator компилирует все схемы из fsys.
func NewPayloadValidator(fsys fs.FS) (*PayloadValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string

	// Сначала добавляем все схемы как ресурсы, чтобы работали $ref между ними
	err := fs.WalkDir(fsys, payloadsRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}

		file, err := fsys.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open schema %s: %w", path, err)
		}
		defer file.Close()

		if err := compiler.AddResource(schemaURLPrefix+path, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking and adding schema resources: %w", err)
	}

	compiled := make(map[string]*jsonschema.Schema, len(paths))
	for _, path := range paths {
		key, ok := keyFromPath(path)
		if !ok {
			continue
		}
		schema, err := compiler.Compile(schemaURLPrefix + path)
		if err != nil {
			return nil, fmt.Errorf("could not compile schema %s: %w", path, err)
		}
		compiled[key] = schema
	}

	return &PayloadValidator{compiled: compiled}, nil
}

// keyFromPath: "payloads/districts/create.json" -> "districts/create"
func keyFromPath(path string) (string, bool) {
	trimmed := strings.TrimPrefix(path, payloadsRoot+"/")
	trimmed = strings.TrimSuffix(trimmed, ".json")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	return trimmed, true
}

// Has сообщает, есть ли схема для пары ресурс/операция.
func (v *PayloadValidator) Has(resource, operation string) bool {
	_, ok := v.compiled[resource+"/"+operation]
	return ok
}

// Validate проверяет payload. Ресурсы и операции без схемы пропускаются.
func (v *PayloadValidator) Validate(resource, operation string, payload domain.Payload) error {
	schema, ok := v.compiled[resource+"/"+operation]
	if !ok {
		return nil
	}

	doc, err := toJSONDocument(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPayloadInvalid, err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPayloadInvalid, err)
	}
	return nil
}

// toJSONDocument приводит поля к виду, который дает json.Unmarshal
// (числа - float64, вложенные структуры - map[string]interface{}).
// Файлы попадают в документ именем файла.
func toJSONDocument(payload domain.Payload) (interface{}, error) {
	fields := make(map[string]any, len(payload.Fields)+len(payload.Files))
	for k, val := range payload.Fields {
		fields[k] = val
	}
	for _, f := range payload.Files {
		fields[f.FieldName] = f.FileName
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("payload is not JSON-serializable: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
