package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

type stubProjectRepo struct {
	projects map[string]*domain.Project
}

func newStubProjectRepo(ids ...string) *stubProjectRepo {
	r := &stubProjectRepo{projects: make(map[string]*domain.Project)}
	for _, id := range ids {
		r.projects[id] = &domain.Project{ID: id, Title: "Project " + id}
	}
	return r
}

func (r *stubProjectRepo) Create(_ context.Context, in ports.ProjectInput) (*domain.Project, error) {
	p := &domain.Project{ID: fmt.Sprintf("proj_%d", len(r.projects)+1), Title: in.Title}
	r.projects[p.ID] = p
	return p, nil
}

func (r *stubProjectRepo) List(_ context.Context) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range r.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProjectRepo) ListCreatedSince(_ context.Context, _ time.Time) ([]domain.Project, error) {
	return r.List(context.Background())
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	copy := *p
	return &copy, nil
}

func (r *stubProjectRepo) Update(_ context.Context, id string, in ports.ProjectInput) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	p.Title = in.Title
	copy := *p
	return &copy, nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

type stubTaskRepo struct {
	tasks  map[string]*domain.Task
	nextID int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func assigneesFor(ids []string) []domain.Assignee {
	out := make([]domain.Assignee, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Assignee{ID: id, Name: "Employee " + id})
	}
	return out
}

func (r *stubTaskRepo) Create(_ context.Context, in ports.TaskInput) (*domain.Task, error) {
	r.nextID++
	t := &domain.Task{
		ID:          fmt.Sprintf("task_%d", r.nextID),
		Description: in.Description,
		Deadline:    in.Deadline,
		Status:      in.Status,
		ProjectID:   in.ProjectID,
		Assignees:   assigneesFor(in.EmployeeIDs),
	}
	r.tasks[t.ID] = t
	copy := *t
	return &copy, nil
}

func (r *stubTaskRepo) List(_ context.Context) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range r.tasks {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTaskRepo) ListByEmployee(_ context.Context, employeeID string) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range r.tasks {
		if t.AssignedTo(employeeID) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTaskRepo) ListOngoing(_ context.Context) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range r.tasks {
		if t.Status == domain.StatusNotStarted || t.Status == domain.StatusInProgress {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copy := *t
	return &copy, nil
}

func (r *stubTaskRepo) Update(_ context.Context, id string, in ports.TaskInput) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.Description = in.Description
	t.Deadline = in.Deadline
	t.Status = in.Status
	if in.ProjectID != "" {
		t.ProjectID = in.ProjectID
	}
	if len(in.EmployeeIDs) > 0 {
		t.Assignees = assigneesFor(in.EmployeeIDs)
	}
	copy := *t
	return &copy, nil
}

func (r *stubTaskRepo) UpdateStatus(_ context.Context, id string, status domain.WorkStatus) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.Status = status
	copy := *t
	return &copy, nil
}

func (r *stubTaskRepo) Reassign(_ context.Context, id string, employeeIDs []string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.Assignees = assigneesFor(employeeIDs)
	copy := *t
	return &copy, nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func newTaskFixture() (*TaskService, *stubTaskRepo, *stubPublisher, *stubDispatcher) {
	repo := newStubTaskRepo()
	publisher := &stubPublisher{}
	dispatcher := &stubDispatcher{}
	svc := NewTaskService(repo, newStubProjectRepo("proj_1"), publisher, dispatcher, zerolog.Nop())
	return svc, repo, publisher, dispatcher
}

func TestTaskService_Create_NotifiesAssignees(t *testing.T) {
	svc, _, _, dispatcher := newTaskFixture()

	task, err := svc.Create(context.Background(), ports.TaskInput{
		Description: "Ship the quarterly report",
		Deadline:    time.Now().AddDate(0, 0, 7),
		ProjectID:   "proj_1",
		EmployeeIDs: []string{"emp_1", "emp_2"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if task.Status != domain.StatusNotStarted {
		t.Fatalf("expected default status, got %s", task.Status)
	}
	if len(dispatcher.enqueued) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(dispatcher.enqueued))
	}
	for _, n := range dispatcher.enqueued {
		if n.Event == nil || n.Event.Name != ports.EventTaskAssigned {
			t.Fatalf("expected taskAssigned event, got %+v", n.Event)
		}
	}
}

func TestTaskService_Create_UnknownProject(t *testing.T) {
	svc, _, _, _ := newTaskFixture()

	if _, err := svc.Create(context.Background(), ports.TaskInput{
		Description: "dangling",
		ProjectID:   "proj_missing",
		EmployeeIDs: []string{"emp_1"},
	}); err != domain.ErrProjectNotFound {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestTaskService_UpdateStatus_AssigneeAllowed(t *testing.T) {
	svc, _, publisher, dispatcher := newTaskFixture()

	task, err := svc.Create(context.Background(), ports.TaskInput{
		Description: "triage bugs",
		ProjectID:   "proj_1",
		EmployeeIDs: []string{"emp_1"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	dispatcher.enqueued = nil

	updated, err := svc.UpdateStatus(context.Background(), ports.UpdateTaskStatusInput{
		TaskID:    task.ID,
		Status:    domain.StatusInProgress,
		ActorID:   "emp_1",
		ActorRole: domain.RoleEmployee,
	})
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Status != domain.StatusInProgress {
		t.Fatalf("expected In Progress, got %s", updated.Status)
	}

	// Admin room sees the change, and each assignee gets a notification.
	if len(publisher.events) != 1 || publisher.events[0].room != ports.AdminRoom {
		t.Fatalf("expected 1 admin_room event, got %+v", publisher.events)
	}
	if len(dispatcher.enqueued) != 1 || dispatcher.enqueued[0].RecipientID != "emp_1" {
		t.Fatalf("expected assignee notification, got %+v", dispatcher.enqueued)
	}
}

func TestTaskService_UpdateStatus_NonAssigneeForbidden(t *testing.T) {
	svc, _, _, _ := newTaskFixture()

	task, err := svc.Create(context.Background(), ports.TaskInput{
		Description: "triage bugs",
		ProjectID:   "proj_1",
		EmployeeIDs: []string{"emp_1"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), ports.UpdateTaskStatusInput{
		TaskID:    task.ID,
		Status:    domain.StatusCompleted,
		ActorID:   "emp_2",
		ActorRole: domain.RoleEmployee,
	}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// An admin is never blocked by the assignment check.
	if _, err := svc.UpdateStatus(context.Background(), ports.UpdateTaskStatusInput{
		TaskID:    task.ID,
		Status:    domain.StatusCompleted,
		ActorID:   "admin_1",
		ActorRole: domain.RoleAdmin,
	}); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
}

func TestTaskService_Update_NewAssigneesGetAssignedEvent(t *testing.T) {
	svc, _, _, dispatcher := newTaskFixture()

	task, err := svc.Create(context.Background(), ports.TaskInput{
		Description: "write docs",
		ProjectID:   "proj_1",
		EmployeeIDs: []string{"emp_1"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	dispatcher.enqueued = nil

	if _, err := svc.Update(context.Background(), task.ID, ports.TaskInput{
		Description: "write docs v2",
		Status:      domain.StatusInProgress,
		EmployeeIDs: []string{"emp_1", "emp_2"},
	}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	events := make(map[string]string)
	for _, n := range dispatcher.enqueued {
		if n.Event != nil {
			events[n.RecipientID] = n.Event.Name
		}
	}
	if events["emp_1"] != ports.EventTaskUpdated {
		t.Fatalf("existing assignee should get taskUpdated, got %q", events["emp_1"])
	}
	if events["emp_2"] != ports.EventTaskAssigned {
		t.Fatalf("new assignee should get taskAssigned, got %q", events["emp_2"])
	}
}

func TestTaskService_Reassign(t *testing.T) {
	svc, _, _, dispatcher := newTaskFixture()

	task, err := svc.Create(context.Background(), ports.TaskInput{
		Description: "rotate on-call",
		ProjectID:   "proj_1",
		EmployeeIDs: []string{"emp_1"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	dispatcher.enqueued = nil

	updated, err := svc.Reassign(context.Background(), task.ID, []string{"emp_3"})
	if err != nil {
		t.Fatalf("Reassign returned error: %v", err)
	}
	if !updated.AssignedTo("emp_3") || updated.AssignedTo("emp_1") {
		t.Fatalf("unexpected assignees: %+v", updated.Assignees)
	}
	if len(dispatcher.enqueued) != 1 || dispatcher.enqueued[0].Event.Name != ports.EventTaskReassigned {
		t.Fatalf("expected taskReassigned notification, got %+v", dispatcher.enqueued)
	}
}

func TestTaskService_Delete_NotifiesAssignees(t *testing.T) {
	svc, repo, _, dispatcher := newTaskFixture()

	task, err := svc.Create(context.Background(), ports.TaskInput{
		Description: "obsolete work",
		ProjectID:   "proj_1",
		EmployeeIDs: []string{"emp_1", "emp_2"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	dispatcher.enqueued = nil

	if err := svc.Delete(context.Background(), task.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok := repo.tasks[task.ID]; ok {
		t.Fatalf("task should be removed")
	}
	if len(dispatcher.enqueued) != 2 {
		t.Fatalf("expected 2 deletion notices, got %d", len(dispatcher.enqueued))
	}
	for _, n := range dispatcher.enqueued {
		if n.Event.Name != ports.EventTaskDeleted {
			t.Fatalf("expected taskDeleted event, got %s", n.Event.Name)
		}
	}
}

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	long := strings.Repeat("日", 30)

	got := truncate(long, 20)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated message carries invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if len(got)-len("…") > 20 {
		t.Fatalf("kept %d bytes, limit was 20", len(got)-len("…"))
	}

	if got := truncate("short", 60); got != "short" {
		t.Fatalf("short strings must pass through, got %q", got)
	}
}
