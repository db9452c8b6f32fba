package entity

// ProvenanceSource discriminates how a lead or sale entered the system.
// Replaces the free-form metadata JSON the platform used to attach per row.
type ProvenanceSource string

const (
	ProvenanceWebhookImport  ProvenanceSource = "webhook-import"
	ProvenanceManualEntry    ProvenanceSource = "manual-entry"
	ProvenanceSampleData     ProvenanceSource = "sample-data"
	ProvenanceTripAssignment ProvenanceSource = "trip-assignment"
)

// Provenance is a discriminated record of a row's creation pathway. Only the
// fields relevant to Source carry values; the rest stay zero.
type Provenance struct {
	Source        ProvenanceSource
	ExternalTxnID string // webhook-import: payment gateway transaction id
	OperatorID    string // manual-entry / sample-data: back-office user id
	TripCode      string // trip-assignment: cruise trip code
}

// Valid reports whether Source is one of the known pathways.
func (p Provenance) Valid() bool {
	switch p.Source {
	case ProvenanceWebhookImport, ProvenanceManualEntry, ProvenanceSampleData, ProvenanceTripAssignment:
		return true
	}
	return false
}
