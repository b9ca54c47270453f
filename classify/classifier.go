package classify

import (
	"context"

	"github.com/ripplica/ripplica/core"
)

// Classifier decides whether a query is a valid information request and
// whether its answer is time-sensitive. Implementations must always
// return a verdict; classification never fails a pipeline run.
type Classifier interface {
	Classify(ctx context.Context, query string) core.Classification
}
