package fhir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medsumm/internal/model"
)

func decode(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestNewBundle(t *testing.T) {
	entities := []model.Entity{
		{Text: "Hemoglobin", Label: model.LabelLabTest},
		{Text: "aspirin", Label: "DRUG"},
		{Text: "Blood Pressure", Label: model.LabelVitalSign},
	}

	b := NewBundle("p-1", entities)

	assert.Equal(t, "Bundle", b.ResourceType)
	assert.Equal(t, "collection", b.Type)
	require.Len(t, b.Entry, 3)

	patient := decode(t, b.Entry[0].Resource)
	assert.Equal(t, "Patient", patient["resourceType"])
	assert.Equal(t, "p-1", patient["id"])

	for i, want := range []string{"Hemoglobin", "Blood Pressure"} {
		obs := decode(t, b.Entry[i+1].Resource)
		assert.Equal(t, "Observation", obs["resourceType"])
		assert.Equal(t, "final", obs["status"])
		assert.Equal(t, "Patient/p-1", obs["subject"].(map[string]any)["reference"])
		assert.Equal(t, want, obs["code"].(map[string]any)["text"])
	}
}

func TestNewBundle_NoEntities(t *testing.T) {
	b := NewBundle("p-1", nil)
	require.Len(t, b.Entry, 1)

	raw, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"resourceType":"Bundle","type":"collection","entry":[{"resource":{"resourceType":"Patient","id":"p-1"}}]}`, string(raw))
}

func TestNewBundle_FreshPerCall(t *testing.T) {
	entities := []model.Entity{{Text: "Glucose", Label: model.LabelLabTest}}
	a := NewBundle("p", entities)
	b := NewBundle("p", entities)
	assert.Equal(t, a, b)
	assert.NotSame(t, a, b)
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		bundle    *Bundle
		wantValid bool
		wantExpr  string
	}{
		{
			name:      "mapper output",
			bundle:    NewBundle("p-1", []model.Entity{{Text: "Pulse", Label: model.LabelVitalSign}}),
			wantValid: true,
		},
		{
			name:     "nil bundle",
			bundle:   nil,
			wantExpr: "Bundle",
		},
		{
			name:     "wrong type",
			bundle:   &Bundle{ResourceType: "Bundle", Type: "transaction"},
			wantExpr: "type",
		},
		{
			name: "bad status",
			bundle: &Bundle{ResourceType: "Bundle", Type: "collection", Entry: []BundleEntry{
				{Resource: json.RawMessage(`{"resourceType":"Observation","status":"done","subject":{"reference":"Patient/p"},"code":{"text":"x"}}`)},
			}},
			wantExpr: "entry[0].resource.status",
		},
		{
			name: "bad reference",
			bundle: &Bundle{ResourceType: "Bundle", Type: "collection", Entry: []BundleEntry{
				{Resource: json.RawMessage(`{"resourceType":"Observation","status":"final","subject":{"reference":"patient p"},"code":{"text":"x"}}`)},
			}},
			wantExpr: "entry[0].resource.subject.reference",
		},
		{
			name: "patient without id",
			bundle: &Bundle{ResourceType: "Bundle", Type: "collection", Entry: []BundleEntry{
				{Resource: json.RawMessage(`{"resourceType":"Patient"}`)},
			}},
			wantExpr: "entry[0].resource.id",
		},
		{
			name: "missing code text",
			bundle: &Bundle{ResourceType: "Bundle", Type: "collection", Entry: []BundleEntry{
				{Resource: json.RawMessage(`{"resourceType":"Observation","status":"final","subject":{"reference":"Patient/p"}}`)},
			}},
			wantExpr: "entry[0].resource.code.text",
		},
		{
			name: "invalid json",
			bundle: &Bundle{ResourceType: "Bundle", Type: "collection", Entry: []BundleEntry{
				{Resource: json.RawMessage(`{`)},
			}},
			wantExpr: "entry[0].resource",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Validate(tt.bundle)
			assert.Equal(t, tt.wantValid, res.Valid)
			if tt.wantExpr != "" {
				require.NotEmpty(t, res.Issues)
				assert.Equal(t, []string{tt.wantExpr}, res.Issues[0].Expression)
			} else {
				assert.Empty(t, res.Issues)
			}
		})
	}
}

func TestValidateReferenceFormat(t *testing.T) {
	// FHIR ids allow no underscores.
	assert.False(t, ValidateReferenceFormat("Patient/test_patient"))
	assert.True(t, ValidateReferenceFormat("Patient/p-1.2"))
	assert.False(t, ValidateReferenceFormat("Patient/"))
}
