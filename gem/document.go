package gem

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/caesar0301/wizagent/compiler/errors"
)

// FieldDecl is one field entry of a model declaration, as written in the
// document: the type is still the raw expression string.
type FieldDecl struct {
	Name string
	Type string
	Desc string
}

// ModelDecl is one model declaration from the output_models list.
type ModelDecl struct {
	Name   string
	Fields []FieldDecl
}

// Document is a shape-checked schema document. Task and Metadata carry
// the optional context sections; Models preserves declaration order.
type Document struct {
	Task     string
	Metadata map[string]interface{}
	Models   []ModelDecl
}

// ModelNames returns the declared model names in document order.
func (d *Document) ModelNames() []string {
	names := make([]string, len(d.Models))
	for i, m := range d.Models {
		names[i] = m.Name
	}
	return names
}

// ParseDocument decodes YAML and checks the document's shape: the
// output_models key must hold a list of model mappings, every model needs
// a name, every field needs a name and a type, and names must be unique.
// Type expressions are not parsed here; that happens during compilation.
func ParseDocument(data []byte) (*Document, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapSchemaError(errors.CodeMalformedDocument, err, "Failed to parse YAML")
	}

	mapping, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.NewSchemaError(errors.CodeMissingOutputModels, "YAML must contain 'output_models' key")
	}

	doc := &Document{}

	if rawTask, present := mapping["task"]; present {
		task, ok := rawTask.(string)
		if !ok {
			return nil, errors.NewSchemaError(errors.CodeInvalidShape, "'task' must be a string")
		}
		doc.Task = task
	}

	if rawMeta, present := mapping["metadata"]; present {
		meta, ok := rawMeta.(map[string]interface{})
		if !ok {
			return nil, errors.NewSchemaError(errors.CodeInvalidShape, "'metadata' must be a mapping")
		}
		doc.Metadata = meta
	}

	rawModels, present := mapping["output_models"]
	if !present {
		return nil, errors.NewSchemaError(errors.CodeMissingOutputModels, "YAML must contain 'output_models' key")
	}
	list, ok := rawModels.([]interface{})
	if !ok {
		return nil, errors.NewSchemaError(errors.CodeInvalidShape, "'output_models' must be a list")
	}

	seenModels := make(map[string]bool, len(list))
	for _, rawModel := range list {
		decl, err := parseModelDecl(rawModel)
		if err != nil {
			return nil, err
		}
		if seenModels[decl.Name] {
			return nil, errors.NewSchemaError(errors.CodeDuplicateModel, "Duplicate model name '%s'", decl.Name)
		}
		seenModels[decl.Name] = true
		doc.Models = append(doc.Models, decl)
	}

	return doc, nil
}

func parseModelDecl(raw interface{}) (ModelDecl, error) {
	entry, ok := raw.(map[string]interface{})
	if !ok {
		return ModelDecl{}, errors.NewSchemaError(errors.CodeInvalidShape, "each entry in 'output_models' must be a mapping")
	}

	rawName, present := entry["name"]
	if !present {
		return ModelDecl{}, errors.NewSchemaError(errors.CodeInvalidShape, "model entry is missing required key 'name'")
	}
	name, ok := rawName.(string)
	if !ok || name == "" {
		return ModelDecl{}, errors.NewSchemaError(errors.CodeInvalidShape, "model name must be a non-empty string")
	}

	decl := ModelDecl{Name: name}

	rawFields, present := entry["fields"]
	if !present || rawFields == nil {
		// Models may declare no fields at all.
		return decl, nil
	}
	fieldList, ok := rawFields.([]interface{})
	if !ok {
		return ModelDecl{}, errors.NewSchemaError(errors.CodeInvalidShape, "'fields' of model '%s' must be a list", name)
	}

	seenFields := make(map[string]bool, len(fieldList))
	for _, rawField := range fieldList {
		field, err := parseFieldDecl(name, rawField)
		if err != nil {
			return ModelDecl{}, err
		}
		if seenFields[field.Name] {
			return ModelDecl{}, errors.NewSchemaError(errors.CodeDuplicateField, "Duplicate field '%s' in model '%s'", field.Name, name)
		}
		seenFields[field.Name] = true
		decl.Fields = append(decl.Fields, field)
	}

	return decl, nil
}

func parseFieldDecl(model string, raw interface{}) (FieldDecl, error) {
	entry, ok := raw.(map[string]interface{})
	if !ok {
		return FieldDecl{}, errors.NewSchemaError(errors.CodeInvalidShape, "each field of model '%s' must be a mapping", model)
	}

	rawName, present := entry["name"]
	if !present {
		return FieldDecl{}, errors.NewSchemaError(errors.CodeMissingFieldKey, "Field in model '%s' is missing required key 'name'", model)
	}
	name, ok := rawName.(string)
	if !ok || name == "" {
		return FieldDecl{}, errors.NewSchemaError(errors.CodeMissingFieldKey, "field name in model '%s' must be a non-empty string", model)
	}

	rawType, present := entry["type"]
	if !present {
		return FieldDecl{}, errors.NewSchemaError(errors.CodeMissingFieldKey, "Field '%s' in model '%s' is missing required key 'type'", name, model)
	}
	typeStr, ok := rawType.(string)
	if !ok {
		return FieldDecl{}, errors.NewSchemaError(errors.CodeMissingFieldKey, "type of field '%s' in model '%s' must be a string", name, model)
	}

	field := FieldDecl{Name: name, Type: typeStr}

	if rawDesc, present := entry["desc"]; present {
		if desc, ok := rawDesc.(string); ok {
			field.Desc = desc
		} else {
			field.Desc = fmt.Sprintf("%v", rawDesc)
		}
	}

	return field, nil
}

// LoadDocument reads a schema document from disk.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapSchemaError(errors.CodeFileRead, err, "Failed to read file")
	}
	return ParseDocument(data)
}
