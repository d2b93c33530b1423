package gdocs

import (
	"context"

	"google.golang.org/api/docs/v1"

	"github.com/irwhub/employee-contract-app/internal/apperr"
)

// ReplaceAllText substitutes every {{key}} token in the document in one
// batch update. Matching is case-sensitive and exact; a key without a
// matching token in the document is a no-op.
func (c *Client) ReplaceAllText(ctx context.Context, docID string, repl map[string]string) error {
	requests := make([]*docs.Request, 0, len(repl))
	for key, value := range repl {
		requests = append(requests, &docs.Request{
			ReplaceAllText: &docs.ReplaceAllTextRequest{
				ContainsText: &docs.SubstringMatchCriteria{
					Text:      "{{" + key + "}}",
					MatchCase: true,
				},
				ReplaceText: value,
			},
		})
	}

	_, err := c.docs.Documents.BatchUpdate(docID, &docs.BatchUpdateDocumentRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return apperr.Upstreamf("placeholder_replace", err, "batch replace in %s failed", docID)
	}
	return nil
}
