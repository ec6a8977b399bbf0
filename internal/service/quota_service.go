package service

import (
	"context"

	"vocabforge-be/internal/dto"
	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/pkg/logger"
	"vocabforge-be/internal/pkg/mailer"
	"vocabforge-be/internal/repository/unitofwork"
	"vocabforge-be/pkg/events"
	pktNats "vocabforge-be/pkg/nats"
	"vocabforge-be/pkg/quota"
)

type IQuotaService interface {
	ResetUser(ctx context.Context, req *dto.ResetQuotaRequest) error
	BulkResetTier(ctx context.Context, req *dto.BulkResetQuotaRequest) (*dto.BulkResetQuotaResponse, error)
	ChangeTier(ctx context.Context, req *dto.ChangeTierRequest) error
	UsageReport(ctx context.Context, limit int) ([]quota.UsageEntry, error)
	CostSnapshot(ctx context.Context) quota.Snapshot
	SetEmergencyStop(ctx context.Context, engaged bool)
}

type quotaService struct {
	uowFactory unitofwork.RepositoryFactory
	governor   *quota.Governor
	ledger     *quota.CostLedger
}

func NewQuotaService(
	uowFactory unitofwork.RepositoryFactory,
	governor *quota.Governor,
	ledger *quota.CostLedger,
) IQuotaService {
	return &quotaService{
		uowFactory: uowFactory,
		governor:   governor,
		ledger:     ledger,
	}
}

func (s *quotaService) ResetUser(ctx context.Context, req *dto.ResetQuotaRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.governor.ResetUser(ctx, uow, req.UserId)
}

func (s *quotaService) BulkResetTier(ctx context.Context, req *dto.BulkResetQuotaRequest) (*dto.BulkResetQuotaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	reset, err := s.governor.BulkResetTier(ctx, uow, entity.QuotaTier(req.Tier))
	if err != nil {
		return nil, err
	}
	return &dto.BulkResetQuotaResponse{Tier: req.Tier, Reset: reset}, nil
}

func (s *quotaService) ChangeTier(ctx context.Context, req *dto.ChangeTierRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.governor.ChangeTier(ctx, uow, req.UserId, entity.QuotaTier(req.Tier))
}

func (s *quotaService) UsageReport(ctx context.Context, limit int) ([]quota.UsageEntry, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.governor.UsageReport(ctx, uow, limit)
}

func (s *quotaService) CostSnapshot(_ context.Context) quota.Snapshot {
	return s.ledger.Snapshot()
}

func (s *quotaService) SetEmergencyStop(_ context.Context, engaged bool) {
	s.ledger.SetEmergencyStop(engaged)
}

// costAlerter fans cost threshold breaches out to the event bus and the
// operator mailbox.
type costAlerter struct {
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
	alertEmail     string
	logger         logger.ILogger
}

func NewCostAlerter(
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	alertEmail string,
	sysLogger logger.ILogger,
) quota.Alerter {
	return &costAlerter{
		eventPublisher: eventPublisher,
		emailService:   emailService,
		alertEmail:     alertEmail,
		logger:         sysLogger,
	}
}

func (a *costAlerter) CostAlert(ctx context.Context, alert quota.Alert) {
	if a.eventPublisher != nil {
		ev := events.NewCostAlertEvent(string(alert.Kind), alert.Model, alert.Amount, alert.Threshold)
		if err := a.eventPublisher.Publish(ctx, ev); err != nil {
			a.logger.Warn("COST", "Failed to publish cost alert event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	if a.emailService != nil && a.alertEmail != "" {
		go func() {
			_ = a.emailService.SendCostAlert(a.alertEmail, string(alert.Kind), alert.Model, alert.Amount, alert.Threshold)
		}()
	}
}
