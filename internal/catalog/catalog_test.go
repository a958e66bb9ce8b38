package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Simplici0/walletcalc/internal/catalog"
	"github.com/Simplici0/walletcalc/internal/pricing"
)

func TestStatic_ServesBuiltInTable(t *testing.T) {
	ctx := context.Background()
	cat := catalog.Static()

	materials, err := cat.Materials(ctx)
	require.NoError(t, err)
	leather, err := catalog.Lookup(materials, "leather")
	require.NoError(t, err)
	require.InDelta(t, 25, leather.Value, 1e-9)
	require.Equal(t, catalog.KindMaterial, leather.Kind)

	sizes, err := cat.Sizes(ctx)
	require.NoError(t, err)
	standard, err := catalog.Lookup(sizes, "standard")
	require.NoError(t, err)
	require.InDelta(t, 1.2, standard.Value, 1e-9)

	features, err := cat.Features(ctx)
	require.NoError(t, err)
	require.Equal(t, pricing.DefaultFeaturePrices(), catalog.PriceTable(features))
}

func TestStatic_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	cat := catalog.Static()

	materials, err := cat.Materials(ctx)
	require.NoError(t, err)
	materials[0].Value = 999

	again, err := cat.Materials(ctx)
	require.NoError(t, err)
	require.NotEqual(t, 999.0, again[0].Value)
}

func TestLookup_UnknownKey(t *testing.T) {
	_, err := catalog.Lookup(catalog.DefaultMaterials(), "ostrich")
	require.ErrorIs(t, err, catalog.ErrUnknownOption)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opt     catalog.Option
		wantErr bool
	}{
		{name: "material ok", opt: catalog.Option{Kind: catalog.KindMaterial, Key: "cork", Label: "Cork", Value: 12}},
		{name: "material zero", opt: catalog.Option{Kind: catalog.KindMaterial, Key: "cork", Label: "Cork"}, wantErr: true},
		{name: "size below one", opt: catalog.Option{Kind: catalog.KindSize, Key: "mini", Label: "Mini", Value: 0.8}, wantErr: true},
		{name: "size one", opt: catalog.Option{Kind: catalog.KindSize, Key: "slim", Label: "Slim", Value: 1}},
		{name: "free feature", opt: catalog.Option{Kind: catalog.KindFeature, Key: "rfid", Label: "RFID", Value: 0}},
		{name: "unknown feature", opt: catalog.Option{Kind: catalog.KindFeature, Key: "zipper", Label: "Zipper", Value: 3}, wantErr: true},
		{name: "missing label", opt: catalog.Option{Kind: catalog.KindMaterial, Key: "cork", Value: 3}, wantErr: true},
		{name: "unknown kind", opt: catalog.Option{Kind: "strap", Key: "x", Label: "X", Value: 3}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := catalog.Validate(tt.opt)
			if tt.wantErr {
				require.ErrorIs(t, err, catalog.ErrInvalidOption)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseKind(t *testing.T) {
	kind, err := catalog.ParseKind("size")
	require.NoError(t, err)
	require.Equal(t, catalog.KindSize, kind)

	_, err = catalog.ParseKind("colour")
	require.ErrorIs(t, err, catalog.ErrInvalidOption)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := []byte(`
materials:
  - {key: cork, label: Cork, value: 12.5}
  - {key: leather, label: Full Grain Leather, value: 32}
sizes:
  - {key: slim, label: Slim, value: 1}
  - {key: xl, label: Extra Large, value: 1.8}
features:
  - {key: monogram, value: 11}
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cat, err := catalog.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "file", cat.Name())

	ctx := context.Background()
	materials, err := cat.Materials(ctx)
	require.NoError(t, err)
	require.Len(t, materials, 2)
	require.True(t, materials[0].Active)

	features, err := cat.Features(ctx)
	require.NoError(t, err)
	prices := catalog.PriceTable(features)
	require.InDelta(t, 11, prices[pricing.FeatureMonogram], 1e-9)
	require.InDelta(t, 8, prices[pricing.FeatureRFID], 1e-9)

	monogram, err := catalog.Lookup(features, "monogram")
	require.NoError(t, err)
	require.Equal(t, "Custom Monogram", monogram.Label)
}

func TestParse_Rejects(t *testing.T) {
	tests := map[string]string{
		"no materials":      "sizes: [{key: slim, label: Slim, value: 1}]",
		"no sizes":          "materials: [{key: cork, label: Cork, value: 1}]",
		"duplicate keys":    "materials: [{key: cork, label: Cork, value: 1}, {key: cork, label: Cork 2, value: 2}]\nsizes: [{key: slim, label: Slim, value: 1}]",
		"unknown feature":   "materials: [{key: cork, label: Cork, value: 1}]\nsizes: [{key: slim, label: Slim, value: 1}]\nfeatures: [{key: zipper, label: Zip, value: 2}]",
		"non positive cost": "materials: [{key: cork, label: Cork, value: 0}]\nsizes: [{key: slim, label: Slim, value: 1}]",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(doc))
			require.ErrorIs(t, err, catalog.ErrInvalidOption)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := catalog.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile_ExampleCatalog(t *testing.T) {
	table, err := catalog.LoadFile("../../catalog.example.yaml")
	require.NoError(t, err)
	require.Equal(t, "file", table.Name())

	features, err := table.Features(context.Background())
	require.NoError(t, err)
	require.Len(t, features, 4)
}

func TestPriceTable_SkipsInactiveFeatures(t *testing.T) {
	prices := catalog.PriceTable([]catalog.Option{
		{Kind: catalog.KindFeature, Key: "rfid", Value: 9, Active: true},
		{Kind: catalog.KindFeature, Key: "monogram", Value: 15, Active: false},
	})

	require.Equal(t, pricing.FeaturePrices{pricing.FeatureRFID: 9}, prices)
}
