package repository

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"

	"github.com/PawsProtect/service-welfare/internal/docstore"
	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

const storeName = "document store"

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeDocument maps a stored document onto a typed record and checks its
// required fields. Malformed documents are collaborator failures.
func decodeDocument[T any](doc docstore.Document) (*T, error) {
	out := new(T)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(docstore.TimeLayout),
		),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(doc.Data); err != nil {
		return nil, malformed(doc, err)
	}
	if err := validate.Struct(out); err != nil {
		return nil, malformed(doc, err)
	}
	return out, nil
}

func malformed(doc docstore.Document, err error) error {
	return domain.NewCollaboratorError(storeName, fmt.Errorf("malformed %s document %s: %w", doc.Collection, doc.ID, err))
}

// storeError classifies a docstore failure for the application layer.
func storeError(entity, id string, err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.NewNotFoundError(entity, id)
	}
	return domain.NewCollaboratorError(storeName, err)
}

func optionalString(p *string) domain.Optional[string] {
	if p == nil || *p == "" {
		return domain.None[string]()
	}
	return domain.Some(*p)
}

// nullable renders an Optional as a document value: nil when absent.
func nullable(o domain.Optional[string]) any {
	if v, ok := o.Get(); ok {
		return v
	}
	return nil
}
