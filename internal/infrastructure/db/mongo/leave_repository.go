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

const leaveCollection = "leave_requests"

type LeaveRepository struct {
	coll *mongo.Collection
}

func NewLeaveRepository(db *mongo.Database) *LeaveRepository {
	return &LeaveRepository{coll: db.Collection(leaveCollection)}
}

type mongoLeave struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	EmployeeID    primitive.ObjectID  `bson:"employee_id"`
	EmployeeName  string              `bson:"employee_name,omitempty"`
	EmployeeEmail string              `bson:"employee_email,omitempty"`
	StartDate     time.Time           `bson:"start_date"`
	EndDate       time.Time           `bson:"end_date"`
	TotalDays     int                 `bson:"total_days"`
	Reason        string              `bson:"reason,omitempty"`
	LeaveType     string              `bson:"leave_type"`
	Status        string              `bson:"status"`
	ReviewedBy    *primitive.ObjectID `bson:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time          `bson:"reviewed_at,omitempty"`
	CreatedAt     time.Time           `bson:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at"`
}

func (r *LeaveRepository) Create(ctx context.Context, req *domain.LeaveRequest) (*domain.LeaveRequest, error) {
	employeeOID, err := parseID(req.EmployeeID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoLeave{
		EmployeeID:    employeeOID,
		EmployeeName:  req.EmployeeName,
		EmployeeEmail: req.EmployeeEmail,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TotalDays:     req.TotalDays,
		Reason:        req.Reason,
		LeaveType:     string(req.LeaveType),
		Status:        string(req.Status),
		CreatedAt:     req.CreatedAt,
		UpdatedAt:     req.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert leave request: %w", err)
	}

	created := *req
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *LeaveRepository) ListByEmployee(ctx context.Context, employeeID string) ([]domain.LeaveRequest, error) {
	oid, err := parseID(employeeID)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, bson.M{"employee_id": oid})
}

func (r *LeaveRepository) ListPending(ctx context.Context) ([]domain.LeaveRequest, error) {
	return r.list(ctx, bson.M{"status": string(domain.LeavePending)})
}

func (r *LeaveRepository) list(ctx context.Context, filter bson.M) ([]domain.LeaveRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoLeave
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode leave requests: %w", err)
	}

	out := make([]domain.LeaveRequest, 0, len(docs))
	for i := range docs {
		out = append(out, *toDomainLeave(&docs[i]))
	}
	return out, nil
}

func (r *LeaveRepository) FindByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoLeave
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeaveNotFound
		}
		return nil, fmt.Errorf("find leave request: %w", err)
	}
	return toDomainLeave(&doc), nil
}

func (r *LeaveRepository) SetStatus(ctx context.Context, id string, status domain.LeaveStatus, reviewerID string, at time.Time) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	reviewerOID, err := parseID(reviewerID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":      string(status),
		"reviewed_by": reviewerOID,
		"reviewed_at": at,
		"updated_at":  at,
	}})
	if err != nil {
		return fmt.Errorf("set leave status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrLeaveNotFound
	}
	return nil
}

func toDomainLeave(doc *mongoLeave) *domain.LeaveRequest {
	req := &domain.LeaveRequest{
		ID:            doc.ID.Hex(),
		EmployeeID:    doc.EmployeeID.Hex(),
		EmployeeName:  doc.EmployeeName,
		EmployeeEmail: doc.EmployeeEmail,
		StartDate:     doc.StartDate,
		EndDate:       doc.EndDate,
		TotalDays:     doc.TotalDays,
		Reason:        doc.Reason,
		LeaveType:     domain.LeaveType(doc.LeaveType),
		Status:        domain.LeaveStatus(doc.Status),
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
	if doc.ReviewedBy != nil {
		req.ReviewedBy = doc.ReviewedBy.Hex()
	}
	if doc.ReviewedAt != nil {
		req.ReviewedAt = *doc.ReviewedAt
	}
	return req
}
