package provider

import (
	"os"
	"path/filepath"

	"github.com/tacogips/scaffold/internal/debug"
	"github.com/tacogips/scaffold/internal/template/model"
)

// loadTemplate checks that root is a directory and parses its descriptor.
func loadTemplate(providerName string, ref model.TemplateRef, root string) (*model.Template, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewNotFoundError(providerName, ref.Location)
		}
		return nil, NewFetchError(providerName, ref.Location, err)
	}
	if !info.IsDir() {
		return nil, NewInvalidTemplateError(providerName, ref.Location, "path must be a directory", nil)
	}

	descPath := filepath.Join(root, model.DescriptorFile)
	debug.Debug("[%s] Reading %s", providerName, descPath)
	data, err := os.ReadFile(descPath)
	if err != nil {
		return nil, NewInvalidTemplateError(providerName, ref.Location,
			"cannot open "+model.DescriptorFile+" in "+root, err)
	}

	desc, err := model.ParseDescription(data)
	if err != nil {
		return nil, NewInvalidTemplateError(providerName, ref.Location,
			"cannot parse "+model.DescriptorFile, err)
	}
	debug.Debug("[%s] Template has %d parameters", providerName, len(desc.Parameters))

	return &model.Template{
		Ref:         ref,
		Description: desc,
		RootPath:    root,
	}, nil
}
