package usecases

import (
	"context"

	"github.com/checkmarble/challenge-backend/repositories"
)

type LivenessUsecase struct {
	repository repositories.LeaderboardRepository
}

func (u LivenessUsecase) Liveness(ctx context.Context) error {
	return u.repository.Liveness(ctx)
}
