package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-pricing/adapters/constants"
	"quote-pricing/core/output"
	"quote-pricing/core/pricing"
	"quote-pricing/core/types"
	"quote-pricing/internal/config"
	"quote-pricing/internal/errors"
)

const bundleInput = `{
  "monthlyRevenueRange": "25K-75K",
  "monthlyTransactions": "100-300",
  "industry": "Professional Services",
  "serviceMonthlyBookkeeping": true,
  "serviceTaasMonthly": true,
  "qboSubscription": true
}`

func opts(format output.Format) priceOptions {
	return priceOptions{
		Table:    pricing.Default(),
		Format:   format,
		Details:  true,
		Calendar: types.CalendarContext{Month: 6},
		Now:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestPriceCLI(t *testing.T) {
	var out bytes.Buffer
	o := opts(output.FormatCLI)
	o.Commission = true
	require.NoError(t, price(&out, strings.NewReader(bundleInput), o))

	s := out.String()
	assert.Contains(t, s, "QUOTE SUMMARY")
	assert.Contains(t, s, "Managed QBO subscription")
	assert.Contains(t, s, "$685")
	assert.Contains(t, s, "Twelve month total")
}

func TestPriceJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, price(&out, strings.NewReader(bundleInput), opts(output.FormatJSON)))

	var report output.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, types.Totals{MonthlyFee: 685, SetupFee: 825}, report.Result.Combined)
	assert.Equal(t, pricing.DefaultVersion, report.Metadata.TableVersion)
	assert.Equal(t, Version, report.Metadata.Version)
	assert.NotEmpty(t, report.Metadata.InputHash)
}

func TestPriceErrors(t *testing.T) {
	var out bytes.Buffer

	err := price(&out, strings.NewReader(`{"serviceBookkeeping": true}`), opts(output.FormatCLI))
	assert.ErrorContains(t, err, "decode input")

	err = price(&out, strings.NewReader(bundleInput), opts("html"))
	assert.ErrorContains(t, err, "unknown output format")

	o := opts(output.FormatCLI)
	o.Calendar = types.CalendarContext{}
	err = price(&out, strings.NewReader(bundleInput), o)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestPrintCommission(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printCommission(&out, pricing.Default(), types.Totals{MonthlyFee: 625, SetupFee: 825}))

	s := out.String()
	assert.Contains(t, s, "165.00")
	assert.Contains(t, s, "250.00")
	assert.Contains(t, s, "62.50")
	assert.Contains(t, s, "415.00")
	assert.Contains(t, s, "1102.50")
	assert.Contains(t, s, "(11 recurring months)")

	assert.Error(t, printCommission(&out, pricing.Default(), types.Totals{MonthlyFee: -1}))
}

func TestValidateFiles(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, validateFiles(&out, []string{"../../../configs/pricing.hcl", "../../../configs/pricing.yaml"}))
	assert.Equal(t, 2, strings.Count(out.String(), "✓"))

	out.Reset()
	err := validateFiles(&out, []string{"../../../configs/pricing.hcl", "missing.yaml"})
	assert.ErrorContains(t, err, "1 of 2")
	assert.Contains(t, out.String(), "✗ missing.yaml")
}

func TestShowTable(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, showTable(&out, pricing.Default(), constants.FormatJSON))

	doc, err := constants.Decode(constants.FormatJSON, out.Bytes(), "shown")
	require.NoError(t, err)
	table, err := pricing.FromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, pricing.Default().Hash(), table.Hash())

	out.Reset()
	require.NoError(t, showTable(&out, pricing.Default(), constants.FormatYAML))
	assert.True(t, strings.HasPrefix(out.String(), "# version "+pricing.DefaultVersion))
}

func TestInitConfigFile(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "etc", "quote-pricing.json")

	require.NoError(t, initConfigFile(&out, path, false))
	assert.Contains(t, out.String(), "wrote "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Server.Addr, cfg.Server.Addr)
	assert.Equal(t, config.CacheMemory, cfg.Cache.Backend)

	err = initConfigFile(&out, path, false)
	assert.ErrorContains(t, err, "already exists")
	require.NoError(t, initConfigFile(&out, path, true))
}
