package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.TrainingRepository = (*TrainingRepo)(nil)

// TrainingRepo TrainingRepository portunun MongoDB uygulaması.
type TrainingRepo struct {
	c            collection[entity.Training]
	participants collection[entity.TrainingParticipant]
}

// NewTrainingRepository eğitim adaptörünü kurar.
func NewTrainingRepository(db *mongo.Database) *TrainingRepo {
	return &TrainingRepo{
		c:            newCollection[entity.Training](db, colTrainings),
		participants: newCollection[entity.TrainingParticipant](db, colParticipants),
	}
}

func (r *TrainingRepo) Create(ctx context.Context, t *entity.Training) error {
	return r.c.insert(ctx, t)
}

func (r *TrainingRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Training, error) {
	return r.c.findOne(ctx, scoped(companyID, id))
}

// LockForEnrolment belgeye yazarak işlem içinde yazma kilidi alır. Eşzamanlı işlem
// WriteConflict alır ve WithTransaction tarafından yeniden denenir.
func (r *TrainingRepo) LockForEnrolment(ctx context.Context, companyID, id string) (*entity.Training, error) {
	var t entity.Training
	err := r.c.coll.FindOneAndUpdate(ctx, scoped(companyID, id),
		bson.M{"$inc": bson.M{"enrolment_seq": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TrainingRepo) Update(ctx context.Context, t *entity.Training) error {
	return r.c.replace(ctx, scoped(t.CompanyID, t.ID), t, domain.ErrNotFound)
}

// Delete eğitimi ve katılımcı kayıtlarını siler.
func (r *TrainingRepo) Delete(ctx context.Context, companyID, id string) error {
	ok, err := r.c.deleteOne(ctx, scoped(companyID, id))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	_, err = r.participants.coll.DeleteMany(ctx, bson.M{"training_id": id})
	return err
}

func (r *TrainingRepo) List(ctx context.Context, f repository.TrainingFilter) ([]*entity.Training, int, error) {
	filter := bson.M{"company_id": f.CompanyID}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return r.c.findPage(ctx, filter, bson.D{{Key: "start_date", Value: -1}}, f.Page)
}

func (r *TrainingRepo) AddParticipant(ctx context.Context, p *entity.TrainingParticipant) error {
	return r.participants.insert(ctx, p)
}

func (r *TrainingRepo) GetParticipant(ctx context.Context, trainingID, employeeID string) (*entity.TrainingParticipant, error) {
	return r.participants.findOne(ctx, bson.M{"training_id": trainingID, "employee_id": employeeID})
}

func (r *TrainingRepo) UpdateParticipant(ctx context.Context, p *entity.TrainingParticipant) error {
	return r.participants.replace(ctx, bson.M{"training_id": p.TrainingID, "employee_id": p.EmployeeID}, p, domain.ErrNotFound)
}

func (r *TrainingRepo) RemoveParticipant(ctx context.Context, trainingID, employeeID string) error {
	ok, err := r.participants.deleteOne(ctx, bson.M{"training_id": trainingID, "employee_id": employeeID})
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TrainingRepo) ListParticipants(ctx context.Context, trainingID string) ([]*entity.TrainingParticipant, error) {
	return r.participants.findAll(ctx, bson.M{"training_id": trainingID}, bson.D{{Key: "enrolled_at", Value: 1}})
}

func (r *TrainingRepo) CountParticipants(ctx context.Context, trainingID string) (int, error) {
	return r.participants.count(ctx, bson.M{"training_id": trainingID})
}
