// Package constants loads versioned constants tables from HCL, YAML or JSON files.
// Every loaded table is validated before it is returned.
package constants

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"quote-pricing/core/pricing"
	"quote-pricing/internal/config"
	"quote-pricing/internal/errors"
	"quote-pricing/internal/logging"
)

// Format is a constants file format
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.Newf(errors.TypeConfig, "unsupported constants file extension %q (want .hcl, .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// Load reads, decodes and validates a constants table.
// An empty path returns the built-in table.
func Load(path string) (*pricing.Table, error) {
	log := logging.Named("constants")
	if path == "" {
		table := pricing.Default()
		log.Debug("using built-in constants table", zap.String("version", table.Version))
		return table, nil
	}

	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}

	table, err := pricing.FromDocument(doc)
	if err != nil {
		log.Error("constants table failed validation", zap.String("path", path), zap.Error(err))
		return nil, errors.Wrapf(errors.TypeConfig, err, "invalid constants table %s", path)
	}

	log.Info("loaded constants table",
		zap.String("path", path),
		zap.String("version", table.Version),
		zap.String("hash", table.Hash().Hex()),
	)
	return table, nil
}

// LoadRegistry loads the configured table into a registry. The built-in table
// stays registered next to a file table, and ActiveVersion picks the default.
func LoadRegistry(cfg config.PricingConfig) (*pricing.Registry, error) {
	table, err := Load(cfg.ConstantsPath)
	if err != nil {
		return nil, err
	}
	tables, err := pricing.NewRegistry(table)
	if err != nil {
		return nil, err
	}
	if table.Version != pricing.DefaultVersion {
		if err := tables.Register(pricing.Default()); err != nil {
			logging.Named("constants").Warn("built-in constants table not registered", zap.Error(err))
		}
	}
	if cfg.ActiveVersion != "" {
		if err := tables.Activate(cfg.ActiveVersion); err != nil {
			return nil, errors.Wrapf(errors.TypeConfig, err, "activate constants table %s", cfg.ActiveVersion)
		}
	}
	return tables, nil
}

// LoadDocument reads and decodes a constants file without validating it
func LoadDocument(path string) (pricing.Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return pricing.Document{}, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return pricing.Document{}, errors.Wrapf(errors.TypeConfig, err, "read constants file %s", path)
	}
	return Decode(format, src, path)
}

// Decode parses constants source in the given format.
// Decode failures are configuration errors wrapping the parsing error.
func Decode(format Format, src []byte, filename string) (pricing.Document, error) {
	var (
		doc pricing.Document
		err error
	)
	switch format {
	case FormatHCL:
		doc, err = decodeHCL(src, filename)
	case FormatYAML:
		err = yaml.UnmarshalStrict(src, &doc)
	case FormatJSON:
		err = decodeJSON(src, &doc)
	default:
		return doc, errors.Newf(errors.TypeConfig, "unsupported constants format %q", format)
	}
	if err != nil {
		parseErr := errors.Parsing(fmt.Sprintf("decode %s constants", format), err)
		return pricing.Document{}, errors.Wrapf(errors.TypeConfig, parseErr, "load constants file %s", filename)
	}
	return doc, nil
}

// Encode serializes a document as YAML or JSON
func Encode(format Format, doc pricing.Document) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	default:
		return nil, errors.Newf(errors.TypeConfig, "cannot encode constants as %q", format)
	}
}

func decodeJSON(src []byte, doc *pricing.Document) error {
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.DisallowUnknownFields()
	return dec.Decode(doc)
}
