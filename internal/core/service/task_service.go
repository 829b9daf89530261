package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

// TaskService implements task management. Mutations push best-effort events
// into the relay and enqueue durable notifications for the assignees.
type TaskService struct {
	repo       ports.TaskRepository
	projects   ports.ProjectRepository
	relay      ports.EventPublisher
	dispatcher ports.NotificationDispatcher
	logger     zerolog.Logger
}

func NewTaskService(
	repo ports.TaskRepository,
	projects ports.ProjectRepository,
	relay ports.EventPublisher,
	dispatcher ports.NotificationDispatcher,
	logger zerolog.Logger,
) *TaskService {
	return &TaskService{repo: repo, projects: projects, relay: relay, dispatcher: dispatcher, logger: logger}
}

func (s *TaskService) Create(ctx context.Context, in ports.TaskInput) (*domain.Task, error) {
	if _, err := s.projects.FindByID(ctx, in.ProjectID); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = domain.StatusNotStarted
	}
	if !in.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	task, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.notifyAssignees(task, ports.EventTaskAssigned, "You have been assigned a new task")
	s.logger.Info().Str("task_id", task.ID).Int("assignees", len(task.Assignees)).Msg("task created")
	return task, nil
}

func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	return s.repo.List(ctx)
}

func (s *TaskService) ListByEmployee(ctx context.Context, employeeID string) ([]domain.Task, error) {
	return s.repo.ListByEmployee(ctx, employeeID)
}

func (s *TaskService) ListOngoing(ctx context.Context) ([]domain.Task, error) {
	return s.repo.ListOngoing(ctx)
}

func (s *TaskService) Update(ctx context.Context, id string, in ports.TaskInput) (*domain.Task, error) {
	if in.Status != "" && !in.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if in.ProjectID != "" {
		if _, err := s.projects.FindByID(ctx, in.ProjectID); err != nil {
			return nil, err
		}
	}

	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = before.Status
	}

	task, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	// Everyone on the task sees the update; employees who were just added
	// get an assignment event instead.
	for _, a := range task.Assignees {
		name := ports.EventTaskUpdated
		msg := fmt.Sprintf("Task %q has been updated", truncate(task.Description, 60))
		if !before.AssignedTo(a.ID) {
			name = ports.EventTaskAssigned
			msg = "You have been assigned a new task"
		}
		s.dispatcher.Enqueue(ports.NotificationInput{
			RecipientID: a.ID,
			Type:        domain.NotifyTaskChange,
			Message:     msg,
			Event:       &ports.Event{Name: name, Payload: taskEventPayload(task)},
		})
	}

	s.logger.Info().Str("task_id", task.ID).Str("status", string(task.Status)).Msg("task updated")
	return task, nil
}

func (s *TaskService) UpdateStatus(ctx context.Context, in ports.UpdateTaskStatusInput) (*domain.Task, error) {
	if !in.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	task, err := s.repo.FindByID(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}
	if in.ActorRole != domain.RoleAdmin && !task.AssignedTo(in.ActorID) {
		return nil, domain.ErrForbidden
	}

	task, err = s.repo.UpdateStatus(ctx, in.TaskID, in.Status)
	if err != nil {
		return nil, err
	}

	payload := taskEventPayload(task)
	s.relay.Publish(ports.AdminRoom, ports.Event{Name: ports.EventTaskUpdated, Payload: payload})
	s.notifyAssignees(task, ports.EventTaskUpdated,
		fmt.Sprintf("Task status changed to %s", task.Status))
	return task, nil
}

func (s *TaskService) Reassign(ctx context.Context, id string, employeeIDs []string) (*domain.Task, error) {
	task, err := s.repo.Reassign(ctx, id, employeeIDs)
	if err != nil {
		return nil, err
	}

	s.notifyAssignees(task, ports.EventTaskReassigned, "A task has been reassigned to you")
	s.logger.Info().Str("task_id", task.ID).Int("assignees", len(task.Assignees)).Msg("task reassigned")
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.notifyAssignees(task, ports.EventTaskDeleted, "A task assigned to you has been deleted")
	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

func (s *TaskService) notifyAssignees(task *domain.Task, event, message string) {
	payload := taskEventPayload(task)
	for _, a := range task.Assignees {
		s.dispatcher.Enqueue(ports.NotificationInput{
			RecipientID: a.ID,
			Type:        domain.NotifyTaskChange,
			Message:     message,
			Event:       &ports.Event{Name: event, Payload: payload},
		})
	}
}

// taskEventPayload is the wire shape pushed to relay rooms on task changes.
func taskEventPayload(t *domain.Task) map[string]any {
	return map[string]any{
		"task_id": t.ID,
		"status":  t.Status,
		"message": fmt.Sprintf("Task %s has been updated", t.ID),
	}
}

// truncate shortens s to at most n bytes without splitting a multi-byte
// character, appending an ellipsis when anything was cut.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
