package worker

import (
	"context"

	"github.com/prepdeck/prepdeck/internal/logger"
	"github.com/prepdeck/prepdeck/internal/services"
)

// CreateCardJob registers an item completion off the request path. The
// completion endpoints submit it at least once; the card repository's
// uniqueness constraint makes repeated runs harmless.
type CreateCardJob struct {
	Reviews services.ReviewService
	Kind    string
	UserID  int64
	ItemID  int64
}

func (j *CreateCardJob) Name() string { return "create_" + j.Kind + "_card" }

func (j *CreateCardJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"user_id": j.UserID,
		"item_id": j.ItemID,
	})

	if _, err := j.Reviews.RegisterCompletion(ctx, j.UserID, j.ItemID); err != nil {
		log.Error("failed to register completion: %v", err)
		return err
	}
	return nil
}
