package research

import (
	"context"

	"github.com/sells-group/opportunity-cli/internal/model"
)

// Source produces candidate ideas for a theme. Sources degrade to an
// empty slice rather than returning errors so one failing provider
// never aborts a run.
type Source interface {
	Search(ctx context.Context, theme string) []model.Idea
}
