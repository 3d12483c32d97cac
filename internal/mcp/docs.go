package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `repairdesk answers questions about a guitar repair shop's history and prices.

Workflow:
1) To quote a new job from a customer's description, call search_similar_cases with the
   symptom text. It returns up to 5 similar past cases and a min/max/avg price range.
2) For a structured quote, call list_work_catalog, then calculate_estimate with the
   instrument type, specs, condition and selected work ids. Read
   repairdesk://docs/estimation-rules before explaining surcharges to a customer.
3) Use list_cases / get_case to browse history, pricing_stats for per-item price
   statistics and market_rates for typical street prices.
4) recent_activity shows cases saved, updated or deleted recently.

Prices are in yen. Tool errors carry a code and a recovery_hint.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "repairdesk://docs/estimation-rules",
		Name:        "estimation_rules",
		Title:       "Estimation rules",
		Description: "How calculate_estimate prices a job, in application order.",
		Content: `# Estimation rules

All amounts are yen. Rules apply in this order and each adds a breakdown line.

1. **Work items.** Each selected catalog item at its base price. ナット交換 costs
   8,000 instead of 10,000 when フレット交換 is also selected.
2. **Polyurethane paint.** +10,000 when any neck or body item is selected or joint
   work is requested. Otherwise a 0 line notes the condition.
3. **Gibson binding (セル山残し).** +20,000 when refret, fret dress or nut exchange is
   selected. Otherwise a 0 line notes the condition.
4. **Joint work.** 沖田式 +40,000, neck reset with angle adjustment +80,000.
5. **Rust.** Level 3 +1,000; level 4 2,000 per rescued screw; level 5 3,000 per
   replaced screw (counts default to 1).
6. **Repair traces.** Professional +10,000. Amateur doubles the subtotal so far and
   adds a warning that the job may be declined.
7. **Dirt.** +5,000 special cleaning.
8. **Instrument multiplier.** vintage, bass, ukulele x1.2; archtop x1.5; applied to
   the subtotal, shown as the difference.
9. **Strings.** +1,500 always.
10. **Minimum charge.** Totals below 3,000 are raised to 3,000.
11. **Rounding.** The total is rounded up to the next 100.

## History search

search_similar_cases splits the query on whitespace and punctuation. A row scores
10 per token found in its symptoms, work, category, model or raw text, +5 more when
the token is in the symptoms and +5 more when it is in the work text. Rows merge
into cases by id or raw-text prefix; the 5 best cases form the price range, which
ignores zero totals.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
