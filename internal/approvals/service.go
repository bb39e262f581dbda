package approvals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danielcastillo/dealerdesk-backend/internal/reporting"
	"github.com/danielcastillo/dealerdesk-backend/internal/sales"
	"github.com/danielcastillo/dealerdesk-backend/internal/spiffs"
	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
)

// Actor identifies the authenticated caller for permission checks.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// Queue is the manager's review backlog for one month.
type Queue struct {
	Sales  []models.Sale  `json:"sales"`
	Spiffs []models.Spiff `json:"spiffs"`
}

// ServiceParams groups dependencies for the approvals service.
type ServiceParams struct {
	ApprovalRepo *Repository
	SaleRepo     *sales.Repository
	SpiffRepo    *spiffs.Repository
}

// Service records manager payroll decisions on sale and spiff entries.
// Decisions never touch the shared-sale split.
type Service interface {
	Decide(ctx context.Context, actor Actor, kind enums.ApprovalKind, entryID uuid.UUID, decision enums.ApprovalStatus, comment string) (models.Approval, error)
	Status(ctx context.Context, kind enums.ApprovalKind, entryID uuid.UUID) (models.Approval, error)
	PendingQueue(ctx context.Context, actor Actor, year int, month time.Month) (Queue, error)
}

type service struct {
	approvalRepo *Repository
	saleRepo     *sales.Repository
	spiffRepo    *spiffs.Repository
	now          func() time.Time
}

// NewService builds an approvals service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ApprovalRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "approval repo is required")
	}
	if params.SaleRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sale repo is required")
	}
	if params.SpiffRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "spiff repo is required")
	}
	return &service{
		approvalRepo: params.ApprovalRepo,
		saleRepo:     params.SaleRepo,
		spiffRepo:    params.SpiffRepo,
		now:          time.Now,
	}, nil
}

// Decide approves or rejects one entry. Rejection requires a comment; a
// settled entry refuses further decisions.
func (s *service) Decide(ctx context.Context, actor Actor, kind enums.ApprovalKind, entryID uuid.UUID, decision enums.ApprovalStatus, comment string) (models.Approval, error) {
	if !actor.Role.CanManage() {
		return models.Approval{}, pkgerrors.New(pkgerrors.CodeForbidden, "only managers may approve entries")
	}
	if !kind.IsValid() {
		return models.Approval{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid approval kind")
	}
	if entryID == uuid.Nil {
		return models.Approval{}, pkgerrors.New(pkgerrors.CodeValidation, "entry id is required")
	}
	if decision != enums.ApprovalStatusApproved && decision != enums.ApprovalStatusRejected {
		return models.Approval{}, pkgerrors.New(pkgerrors.CodeValidation, "decision must be approved or rejected")
	}
	comment = strings.TrimSpace(comment)
	if decision == enums.ApprovalStatusRejected && comment == "" {
		return models.Approval{}, pkgerrors.New(pkgerrors.CodeValidation, "rejection requires a comment").
			WithDetails(map[string]string{"comment": "is required when rejecting"})
	}

	ownerID, err := s.entryOwner(ctx, kind, entryID)
	if err != nil {
		return models.Approval{}, err
	}

	approval, err := s.approvalRepo.FindByEntry(ctx, kind, entryID)
	switch {
	case err == nil:
		if approval.Status != enums.ApprovalStatusPending {
			return models.Approval{}, pkgerrors.New(pkgerrors.CodeStateConflict, "entry has already been decided")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		approval = models.Approval{
			Kind:    kind,
			EntryID: entryID,
			UserID:  ownerID,
			Status:  enums.ApprovalStatusPending,
		}
		if err := s.approvalRepo.Create(ctx, &approval); err != nil {
			return models.Approval{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create approval")
		}
	default:
		return models.Approval{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load approval")
	}

	decidedAt := s.now().UTC()
	approval.Status = decision
	approval.ManagerID = &actor.ID
	approval.DecidedAt = &decidedAt
	if comment != "" {
		approval.Comment = &comment
	}
	if err := s.approvalRepo.Save(ctx, &approval); err != nil {
		return models.Approval{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save approval")
	}
	return approval, nil
}

// Status returns the stored decision for an entry; an entry with no row is
// reported as pending.
func (s *service) Status(ctx context.Context, kind enums.ApprovalKind, entryID uuid.UUID) (models.Approval, error) {
	if !kind.IsValid() {
		return models.Approval{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid approval kind")
	}
	approval, err := s.approvalRepo.FindByEntry(ctx, kind, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Approval{
				Kind:    kind,
				EntryID: entryID,
				Status:  enums.ApprovalStatusPending,
			}, nil
		}
		return models.Approval{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load approval")
	}
	return approval, nil
}

// PendingQueue lists the month's undecided sales and spiffs for review.
func (s *service) PendingQueue(ctx context.Context, actor Actor, year int, month time.Month) (Queue, error) {
	if !actor.Role.CanManage() {
		return Queue{}, pkgerrors.New(pkgerrors.CodeForbidden, "only managers may review entries")
	}

	window := reporting.MonthWindow(year, month)
	pendingSales, err := s.approvalRepo.ListUndecidedSales(ctx, window)
	if err != nil {
		return Queue{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list undecided sales")
	}
	pendingSpiffs, err := s.approvalRepo.ListUndecidedSpiffs(ctx, window)
	if err != nil {
		return Queue{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list undecided spiffs")
	}
	return Queue{Sales: pendingSales, Spiffs: pendingSpiffs}, nil
}

func (s *service) entryOwner(ctx context.Context, kind enums.ApprovalKind, entryID uuid.UUID) (uuid.UUID, error) {
	switch kind {
	case enums.ApprovalKindSale:
		sale, err := s.saleRepo.FindByID(ctx, entryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "sale not found")
			}
			return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
		}
		return sale.UserID, nil
	default:
		spiff, err := s.spiffRepo.FindByID(ctx, entryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "spiff not found")
			}
			return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load spiff")
		}
		return spiff.UserID, nil
	}
}
