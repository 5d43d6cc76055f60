package fhir

import (
	"encoding/json"

	"medsumm/internal/model"
)

// Bundle types and resource names used by the mapper.
const (
	BundleTypeCollection = "collection"

	ResourceBundle      = "Bundle"
	ResourcePatient     = "Patient"
	ResourceObservation = "Observation"

	ObservationStatusFinal = "final"
)

// Bundle represents a FHIR R4 Bundle resource.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	Type         string        `json:"type"`
	Entry        []BundleEntry `json:"entry"`
}

// BundleEntry wraps one resource of a bundle.
type BundleEntry struct {
	Resource json.RawMessage `json:"resource"`
}

// Reference points at another resource as "ResourceType/id".
type Reference struct {
	Reference string `json:"reference"`
}

// CodeableConcept carries a free-text code.
type CodeableConcept struct {
	Text string `json:"text"`
}

// Patient is the minimal Patient resource emitted by the mapper.
type Patient struct {
	ResourceType string `json:"resourceType"`
	ID           string `json:"id"`
}

// Observation is the minimal Observation resource emitted per entity.
type Observation struct {
	ResourceType string          `json:"resourceType"`
	Status       string          `json:"status"`
	Subject      Reference       `json:"subject"`
	Code         CodeableConcept `json:"code"`
}

// observedLabels lists the entity labels that become observations.
var observedLabels = map[string]bool{
	model.LabelLabTest:   true,
	model.LabelVitalSign: true,
}

// NewBundle maps entities into a collection bundle: one Patient followed by
// one final Observation per LAB_TEST or VITAL_SIGN entity, in input order.
// It performs no IO and returns a fresh bundle on every call.
func NewBundle(patientID string, entities []model.Entity) *Bundle {
	b := &Bundle{
		ResourceType: ResourceBundle,
		Type:         BundleTypeCollection,
		Entry:        make([]BundleEntry, 0, len(entities)+1),
	}
	b.Entry = append(b.Entry, entryOf(Patient{ResourceType: ResourcePatient, ID: patientID}))

	subject := Reference{Reference: ResourcePatient + "/" + patientID}
	for _, e := range entities {
		if !observedLabels[e.Label] {
			continue
		}
		b.Entry = append(b.Entry, entryOf(Observation{
			ResourceType: ResourceObservation,
			Status:       ObservationStatusFinal,
			Subject:      subject,
			Code:         CodeableConcept{Text: e.Text},
		}))
	}
	return b
}

func entryOf(resource any) BundleEntry {
	// Marshaling these flat structs cannot fail.
	raw, _ := json.Marshal(resource)
	return BundleEntry{Resource: raw}
}
