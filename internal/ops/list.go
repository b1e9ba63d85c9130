package ops

import (
	"database/sql"

	"tenderscan/internal/db"
	"tenderscan/internal/tender"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Limit  int
	Offset int
}

// ListItem is one row in the listing; the full specification text is elided.
type ListItem struct {
	TenderID         string `json:"tender_id"`
	SourceFile       string `json:"source_file,omitempty"`
	ProjectName      string `json:"project_name,omitempty"`
	Ministry         string `json:"ministry,omitempty"`
	DeliveryDeadline string `json:"delivery_deadline,omitempty"`
	SpecCount        int    `json:"spec_count"`
	RunID            string `json:"run_id,omitempty"`
	UpdatedAt        int64  `json:"updated_at"`
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Tenders    []ListItem `json:"tenders"`
	Pagination Pagination `json:"pagination"`
}

// List returns tender records, most recently updated first.
func List(database *sql.DB, input ListInput) (*ListOutput, error) {
	limit := clampLimit(input.Limit)
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	tenders, err := db.List(database, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := db.Count(database)
	if err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(tenders))
	for _, t := range tenders {
		items = append(items, toListItem(t))
	}

	return &ListOutput{
		Tenders: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
	}, nil
}

func toListItem(t *tender.Tender) ListItem {
	return ListItem{
		TenderID:         t.TenderID,
		SourceFile:       t.SourceFile,
		ProjectName:      t.ProjectName,
		Ministry:         t.Ministry,
		DeliveryDeadline: t.DeliveryDeadline,
		SpecCount:        t.SpecCount,
		RunID:            t.RunID,
		UpdatedAt:        t.UpdatedAt,
	}
}
