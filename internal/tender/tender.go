// Package tender defines the record types shared by the extraction pipeline,
// the database index, and the JSON output store.
package tender

// Tender is the persisted record for one processed document.
type Tender struct {
	// TenderID uniquely identifies the tender. Resolved from the source
	// filename, the document text, or generated sequentially.
	TenderID string `json:"tender_id"`

	// SourceFile is the filename the document text came from, if any.
	SourceFile string `json:"source_file,omitempty"`

	// ProjectName is the tender's project/work title, if found.
	ProjectName string `json:"project_name,omitempty"`

	// Ministry is the issuing ministry or department, if found.
	Ministry string `json:"ministry,omitempty"`

	// DeliveryDeadline is the delivery period or submission deadline phrase
	// as matched in the text, if any.
	DeliveryDeadline string `json:"delivery_deadline,omitempty"`

	// Warranty is the warranty/guarantee phrase as matched, if any.
	Warranty string `json:"warranty,omitempty"`

	// Voltage is the voltage grade/rating phrase as matched, if any.
	Voltage string `json:"voltage,omitempty"`

	// Quantities holds every quantity phrase matched, in document order,
	// not deduplicated.
	Quantities []string `json:"quantities,omitempty"`

	// Standards holds referenced standards in canonical "BODY NNN" form,
	// deduplicated and sorted.
	Standards []string `json:"standards,omitempty"`

	// ItemDescriptions holds lines flagged as product descriptions.
	ItemDescriptions []string `json:"item_descriptions,omitempty"`

	// TechnicalSpecs is the formatted specification text, capped with an
	// ellipsis marker when truncated.
	TechnicalSpecs string `json:"technical_specifications,omitempty"`

	// SpecCount is the number of specification records extracted.
	SpecCount int `json:"spec_count"`

	// RunID is the ULID of the pipeline run that produced this record.
	RunID string `json:"run_id,omitempty"`

	// CreatedAt and UpdatedAt are Unix timestamps. A reprocessed document
	// keeps its original CreatedAt.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}
