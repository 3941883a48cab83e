package cmd

import "github.com/ardnew/cssfn/lang"

var (
	ErrJSONMarshal = lang.NewError("marshal JSON")
	ErrYAMLMarshal = lang.NewError("marshal YAML")
	ErrWriteConfig = lang.NewError("write configuration file")
	ErrFileExists  = lang.NewError("file exists (use --force to overwrite)")
	ErrNoSource    = lang.NewError("no stylesheet source")
	ErrReadSource  = lang.NewError("read stylesheet")
	ErrWriteOutput = lang.NewError("write output")
)
