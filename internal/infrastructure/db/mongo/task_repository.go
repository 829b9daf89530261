package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

const tasksCollection = "tasks"

// TaskRepository persists tasks. Assignee names are resolved with a $lookup
// against the users collection on every read path.
type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(tasksCollection)}
}

type mongoAssignee struct {
	ID   primitive.ObjectID `bson:"_id"`
	Name string             `bson:"name"`
}

type mongoTask struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Description string               `bson:"description"`
	Deadline    time.Time            `bson:"deadline"`
	Status      string               `bson:"status"`
	ProjectID   primitive.ObjectID   `bson:"project_id"`
	AssignedIDs []primitive.ObjectID `bson:"assigned_employees"`
	Assignees   []mongoAssignee      `bson:"assignees,omitempty"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func parseIDs(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := parseID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, oid)
	}
	return out, nil
}

func (r *TaskRepository) Create(ctx context.Context, in ports.TaskInput) (*domain.Task, error) {
	projectOID, err := parseID(in.ProjectID)
	if err != nil {
		return nil, err
	}
	assigned, err := parseIDs(in.EmployeeIDs)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoTask{
		Description: in.Description,
		Deadline:    in.Deadline,
		Status:      string(in.Status),
		ProjectID:   projectOID,
		AssignedIDs: assigned,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return r.FindByID(ctx, res.InsertedID.(primitive.ObjectID).Hex())
}

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	return r.aggregate(ctx, bson.M{})
}

func (r *TaskRepository) ListByEmployee(ctx context.Context, employeeID string) ([]domain.Task, error) {
	oid, err := parseID(employeeID)
	if err != nil {
		return nil, err
	}
	return r.aggregate(ctx, bson.M{"assigned_employees": oid})
}

func (r *TaskRepository) ListOngoing(ctx context.Context) ([]domain.Task, error) {
	return r.aggregate(ctx, bson.M{"status": bson.M{"$in": bson.A{
		string(domain.StatusNotStarted),
		string(domain.StatusInProgress),
	}}})
}

func (r *TaskRepository) aggregate(ctx context.Context, match bson.M) ([]domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Aggregate(ctx, r.pipeline(match))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoTask
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	out := make([]domain.Task, 0, len(docs))
	for i := range docs {
		out = append(out, *toDomainTask(&docs[i]))
	}
	return out, nil
}

func (r *TaskRepository) pipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "deadline", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "assigned_employees",
			"foreignField": "_id",
			"as":           "assignees",
			"pipeline": bson.A{
				bson.M{"$project": bson.M{"name": 1}},
			},
		}}},
	}
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Aggregate(ctx, r.pipeline(bson.M{"_id": oid}))
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoTask
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode task: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return toDomainTask(&docs[0]), nil
}

func (r *TaskRepository) Update(ctx context.Context, id string, in ports.TaskInput) (*domain.Task, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	projectOID, err := parseID(in.ProjectID)
	if err != nil {
		return nil, err
	}
	assigned, err := parseIDs(in.EmployeeIDs)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"description":        in.Description,
		"deadline":           in.Deadline,
		"status":             string(in.Status),
		"project_id":         projectOID,
		"assigned_employees": assigned,
		"updated_at":         time.Now().UTC(),
	}})
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id string, status domain.WorkStatus) (*domain.Task, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *TaskRepository) Reassign(ctx context.Context, id string, employeeIDs []string) (*domain.Task, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	assigned, err := parseIDs(employeeIDs)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"assigned_employees": assigned,
		"updated_at":         time.Now().UTC(),
	}})
	if err != nil {
		return nil, fmt.Errorf("reassign task: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func toDomainTask(doc *mongoTask) *domain.Task {
	t := &domain.Task{
		ID:          doc.ID.Hex(),
		Description: doc.Description,
		Deadline:    doc.Deadline,
		Status:      domain.WorkStatus(doc.Status),
		ProjectID:   doc.ProjectID.Hex(),
		Assignees:   make([]domain.Assignee, 0, len(doc.Assignees)),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
	for _, a := range doc.Assignees {
		t.Assignees = append(t.Assignees, domain.Assignee{ID: a.ID.Hex(), Name: a.Name})
	}
	return t
}
