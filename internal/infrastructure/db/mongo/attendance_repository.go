package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamforge/ems-api/internal/core/domain"
)

const clockCollection = "clock_records"

type AttendanceRepository struct {
	coll *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{coll: db.Collection(clockCollection)}
}

type mongoClockRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID primitive.ObjectID `bson:"employee_id"`
	ClockIn    time.Time          `bson:"clock_in"`
	ClockOut   *time.Time         `bson:"clock_out,omitempty"`
	TotalHours float64            `bson:"total_hours,omitempty"`
	Status     string             `bson:"status"`
	WorkType   string             `bson:"work_type"`
	Notes      string             `bson:"notes,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (r *AttendanceRepository) Insert(ctx context.Context, rec *domain.ClockRecord) (*domain.ClockRecord, error) {
	employeeOID, err := parseID(rec.EmployeeID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoClockRecord{
		EmployeeID: employeeOID,
		ClockIn:    rec.ClockIn,
		Status:     string(rec.Status),
		WorkType:   string(rec.WorkType),
		Notes:      rec.Notes,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert clock record: %w", err)
	}

	created := *rec
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// FindOpen returns the employee's record with no clock-out, newest first in
// case historic data ever holds more than one.
func (r *AttendanceRepository) FindOpen(ctx context.Context, employeeID string) (*domain.ClockRecord, error) {
	oid, err := parseID(employeeID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoClockRecord
	err = r.coll.FindOne(ctx,
		bson.M{"employee_id": oid, "clock_out": bson.M{"$exists": false}},
		options.FindOne().SetSort(bson.D{{Key: "clock_in", Value: -1}}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoOpenClockRecord
		}
		return nil, fmt.Errorf("find open clock record: %w", err)
	}
	return toDomainClockRecord(&doc), nil
}

func (r *AttendanceRepository) Close(ctx context.Context, id string, out time.Time, hours float64) (*domain.ClockRecord, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoClockRecord
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "clock_out": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{
			"clock_out":   out,
			"total_hours": hours,
			"status":      string(domain.ClockedOut),
			"updated_at":  out,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoOpenClockRecord
		}
		return nil, fmt.Errorf("close clock record: %w", err)
	}
	return toDomainClockRecord(&doc), nil
}

func (r *AttendanceRepository) ListBetween(ctx context.Context, employeeID string, from, to time.Time) ([]domain.ClockRecord, error) {
	oid, err := parseID(employeeID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx,
		bson.M{
			"employee_id": oid,
			"clock_in":    bson.M{"$gte": from, "$lt": to},
		},
		options.Find().SetSort(bson.D{{Key: "clock_in", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list clock records: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoClockRecord
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode clock records: %w", err)
	}

	out := make([]domain.ClockRecord, 0, len(docs))
	for i := range docs {
		out = append(out, *toDomainClockRecord(&docs[i]))
	}
	return out, nil
}

func (r *AttendanceRepository) CountDistinctClockedIn(ctx context.Context, from, to time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ids, err := r.coll.Distinct(ctx, "employee_id",
		bson.M{"clock_in": bson.M{"$gte": from, "$lt": to}})
	if err != nil {
		return 0, fmt.Errorf("count clocked in: %w", err)
	}
	return int64(len(ids)), nil
}

func toDomainClockRecord(doc *mongoClockRecord) *domain.ClockRecord {
	rec := &domain.ClockRecord{
		ID:         doc.ID.Hex(),
		EmployeeID: doc.EmployeeID.Hex(),
		ClockIn:    doc.ClockIn,
		TotalHours: doc.TotalHours,
		Status:     domain.ClockStatus(doc.Status),
		WorkType:   domain.WorkType(doc.WorkType),
		Notes:      doc.Notes,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
	if doc.ClockOut != nil {
		rec.ClockOut = *doc.ClockOut
	}
	return rec
}
