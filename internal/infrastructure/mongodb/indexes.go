package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Koleksiyon adları.
const (
	colCompanies     = "companies"
	colModules       = "company_modules"
	colDepartments   = "departments"
	colUsers         = "users"
	colEmployees     = "employees"
	colLeaves        = "leaves"
	colPerformance   = "performance_reviews"
	colPayrolls      = "payrolls"
	colJobs          = "jobs"
	colApplications  = "job_applications"
	colTrainings     = "trainings"
	colParticipants  = "training_participants"
	colNotifications = "notifications"
	colAuditLogs     = "audit_logs"
	colActivities    = "activities"
	colSettings      = "system_settings"
)

type indexSpec struct {
	coll   string
	name   string
	keys   bson.D
	unique bool
}

var indexes = []indexSpec{
	{colCompanies, "uniq_tax_number", bson.D{{Key: "tax_number", Value: 1}}, true},
	{colModules, "uniq_company_module", bson.D{{Key: "company_id", Value: 1}, {Key: "module_name", Value: 1}}, true},
	{colUsers, "uniq_email", bson.D{{Key: "email", Value: 1}}, true},
	{colUsers, "company_role", bson.D{{Key: "company_id", Value: 1}, {Key: "role", Value: 1}}, false},
	{colDepartments, "uniq_company_name", bson.D{{Key: "company_id", Value: 1}, {Key: "name", Value: 1}}, true},
	{colEmployees, "uniq_company_number", bson.D{{Key: "company_id", Value: 1}, {Key: "employee_number", Value: 1}}, true},
	{colEmployees, "uniq_company_national_id", bson.D{{Key: "company_id", Value: 1}, {Key: "national_id", Value: 1}}, true},
	{colEmployees, "company_status", bson.D{{Key: "company_id", Value: 1}, {Key: "status", Value: 1}}, false},
	{colLeaves, "employee_dates", bson.D{{Key: "employee_id", Value: 1}, {Key: "start_date", Value: 1}, {Key: "end_date", Value: 1}}, false},
	{colLeaves, "company_status", bson.D{{Key: "company_id", Value: 1}, {Key: "status", Value: 1}}, false},
	{colPerformance, "employee_period", bson.D{{Key: "employee_id", Value: 1}, {Key: "period", Value: 1}}, false},
	{colPayrolls, "uniq_employee_period", bson.D{{Key: "company_id", Value: 1}, {Key: "employee_id", Value: 1}, {Key: "year", Value: 1}, {Key: "month", Value: 1}}, true},
	{colJobs, "company_status", bson.D{{Key: "company_id", Value: 1}, {Key: "status", Value: 1}}, false},
	{colApplications, "uniq_job_email", bson.D{{Key: "job_id", Value: 1}, {Key: "email", Value: 1}}, true},
	{colParticipants, "uniq_training_employee", bson.D{{Key: "training_id", Value: 1}, {Key: "employee_id", Value: 1}}, true},
	{colNotifications, "user_read_created", bson.D{{Key: "user_id", Value: 1}, {Key: "is_read", Value: 1}, {Key: "created_at", Value: -1}}, false},
	{colAuditLogs, "company_created", bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}}, false},
	{colActivities, "company_created", bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}}, false},
	{colSettings, "uniq_company_key", bson.D{{Key: "company_id", Value: 1}, {Key: "key", Value: 1}}, true},
}

// EnsureIndexes gerekli indeksleri oluşturur. Aynı adla farklı seçenekli bir
// indeks varsa (IndexOptionsConflict, kod 85) silip yeniden oluşturur.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, spec := range indexes {
		if err := ensureIndex(ctx, db.Collection(spec.coll), spec); err != nil {
			return err
		}
	}
	return nil
}

func ensureIndex(ctx context.Context, coll *mongo.Collection, spec indexSpec) error {
	model := mongo.IndexModel{
		Keys:    spec.keys,
		Options: options.Index().SetName(spec.name).SetUnique(spec.unique),
	}
	_, err := coll.Indexes().CreateOne(ctx, model)
	if err == nil {
		return nil
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 85 || ce.Code == 86) {
		if _, dropErr := coll.Indexes().DropOne(ctx, spec.name); dropErr != nil {
			return fmt.Errorf("drop index %s.%s: %w", spec.coll, spec.name, dropErr)
		}
		if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("recreate index %s.%s: %w", spec.coll, spec.name, err)
		}
		return nil
	}
	return fmt.Errorf("create index %s.%s: %w", spec.coll, spec.name, err)
}
