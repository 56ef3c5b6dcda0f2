package repository

import (
	"context"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// TrainingRepository eğitimler ve katılımcılar için kalıcılık portu.
type TrainingRepository interface {
	Create(ctx context.Context, t *entity.Training) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Training, error)
	Update(ctx context.Context, t *entity.Training) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, f TrainingFilter) ([]*entity.Training, int, error)
	// LockForEnrolment eğitimi işlem sonuna kadar kilitleyerek okur. Aynı eğitime eşzamanlı
	// kayıtlar sıraya girer; kontenjan kontrolü kilitten sonra yapılmalıdır. Yoksa nil, nil.
	LockForEnrolment(ctx context.Context, companyID, id string) (*entity.Training, error)

	AddParticipant(ctx context.Context, p *entity.TrainingParticipant) error
	GetParticipant(ctx context.Context, trainingID, employeeID string) (*entity.TrainingParticipant, error)
	UpdateParticipant(ctx context.Context, p *entity.TrainingParticipant) error
	RemoveParticipant(ctx context.Context, trainingID, employeeID string) error
	ListParticipants(ctx context.Context, trainingID string) ([]*entity.TrainingParticipant, error)
	CountParticipants(ctx context.Context, trainingID string) (int, error)
}
