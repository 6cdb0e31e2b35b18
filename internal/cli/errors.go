package cli

import (
	"errors"

	"github.com/tacogips/scaffold/internal/app"
	"github.com/tacogips/scaffold/internal/config"
	"github.com/tacogips/scaffold/internal/template/generator"
	"github.com/tacogips/scaffold/internal/template/model"
	"github.com/tacogips/scaffold/internal/template/params"
	"github.com/tacogips/scaffold/internal/template/provider"
)

// errorStage names the failing stage of err for the final error line.
func errorStage(err error) string {
	var genErr *generator.GeneratorError
	if errors.As(err, &genErr) {
		return string(genErr.Category())
	}

	var descErr *model.DescriptionError
	if errors.As(err, &descErr) {
		return string(generator.CategoryConfiguration)
	}

	var provErr *provider.ProviderError
	if errors.As(err, &provErr) {
		return "fetch"
	}

	var resErr *params.ResolverError
	if errors.As(err, &resErr) {
		return "parameters"
	}

	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		return string(generator.CategoryConfiguration)
	}

	var appErr *app.AppError
	if errors.As(err, &appErr) {
		return appErr.Type.String()
	}

	return "error"
}
