package rest

import "context"

// additionalResultsLabel marks progress output for pages after the first.
const additionalResultsLabel = " (getting additional results)"

// FetchAll drives Do across every page of a list endpoint, following the
// Link rel="next" chain until it is exhausted or singlePage is set.
// Pages are fetched and appended strictly in server order.
//
// The result is always a flat slice, even for a single page whose payload
// is not an array. Executor errors propagate unchanged; there is no
// partial-result suppression.
func (c *Client) FetchAll(ctx context.Context, fragment, description string, singlePage bool) ([]any, error) {
	results := []any{}
	next := fragment
	page := 0

	for next != "" {
		desc := description
		if page > 0 {
			desc += additionalResultsLabel
		}
		env, err := c.Do(ctx, Request{
			Path:        next,
			Method:      MethodGet,
			Description: desc,
			Detached:    c.Interactive(),
		})
		if err != nil {
			return nil, err
		}

		switch p := env.Payload.(type) {
		case []any:
			results = append(results, p...)
		case nil:
		default:
			results = append(results, p)
		}

		if singlePage {
			break
		}
		next = env.NextLink
		page++
	}

	return results, nil
}
