package ops

import (
	"tenderscan/internal/classify"
	"tenderscan/internal/errors"
)

// ClassifyInput contains parameters for the Classify operation. Either the
// subject/body message fields or the bare Text field must be set.
type ClassifyInput struct {
	Subject string
	Body    string
	Sender  string
	HasPDF  bool

	// Text classifies a bare blob without subject/attachment context.
	Text string
}

// ClassifyOutput contains the classification decision.
type ClassifyOutput struct {
	IsTender bool   `json:"is_tender"`
	Mode     string `json:"mode"` // message | text
}

// Classify decides whether a message or text is tender-related.
func Classify(input ClassifyInput) (*ClassifyOutput, error) {
	if input.Text != "" {
		return &ClassifyOutput{
			IsTender: classify.ClassifyText(input.Text),
			Mode:     "text",
		}, nil
	}
	if input.Subject == "" && input.Body == "" {
		return nil, errors.NewInvalidRequest("subject, body, or text is required")
	}

	return &ClassifyOutput{
		IsTender: classify.IsTender(input.Subject, input.Body, input.Sender, input.HasPDF),
		Mode:     "message",
	}, nil
}
