package in

import (
	"context"

	"ecoscan/internal/modules/rewards/dto"
	rewardsin "ecoscan/internal/modules/rewards/port/in"
)

type CLIHandler struct {
	usecase rewardsin.Usecase
}

func NewCLIHandler(usecase rewardsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Overview(ctx context.Context) (dto.OverviewOutput, error) {
	return h.usecase.Overview(ctx)
}
