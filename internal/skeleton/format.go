package skeleton

import (
	"io"
	"runtime"

	"msgtools/internal/catalog"
)

// Format serializes a catalog into one skeleton file.
type Format interface {
	// Name labels the format in diagnostics and metrics.
	Name() string
	// Extension is appended to the nested type name to form the file name.
	Extension() string
	Write(w io.Writer, cat *catalog.Catalog) error
}

// PropertiesExtension is the file extension of properties skeletons.
const PropertiesExtension = ".i18n_locale_COUNTRY_VARIANT.properties"

var lineSeparator = newline(runtime.GOOS)

func newline(goos string) string {
	if goos == "windows" {
		return "\r\n"
	}
	return "\n"
}

// Properties writes "#<template>" followed by "<key>=" for every entry, in
// catalog order. Nothing is escaped.
type Properties struct{}

func (Properties) Name() string      { return "properties" }
func (Properties) Extension() string { return PropertiesExtension }

func (Properties) Write(w io.Writer, cat *catalog.Catalog) error {
	ew := &errWriter{w: w}
	for key, template := range cat.All() {
		ew.write("#", template, lineSeparator, key, "=", lineSeparator)
	}
	return ew.err
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) write(parts ...string) {
	for _, p := range parts {
		if ew.err != nil {
			return
		}
		_, ew.err = io.WriteString(ew.w, p)
	}
}
