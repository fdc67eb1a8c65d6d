package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayroman1160/agencyos/internal/models"
)

func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an unstarted task for the client", func(t *testing.T) {
		tasks := newFakeTaskStore()
		invalidator := &recordingInvalidator{}
		svc := NewTaskService(tasks, invalidator, testLogger())

		clientID := uuid.New()
		assignee := uuid.New()
		due := time.Date(2024, 7, 1, 15, 30, 0, 0, time.Local)

		task, err := svc.CreateTask(ctx, partnerActor(), CreateTaskInput{
			Title:      "Quarterly review",
			ClientID:   clientID,
			DueDate:    due,
			AssigneeID: &assignee,
		})
		require.NoError(t, err)
		assert.Equal(t, models.TaskStatusTodo, task.Status)
		assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), task.DueDate)
		assert.Equal(t, assignee, task.AssigneeID.UUID)
		assert.Equal(t, []uuid.UUID{clientID}, invalidator.changed)
	})

	t.Run("rejects incomplete input", func(t *testing.T) {
		svc := NewTaskService(newFakeTaskStore(), NopInvalidator{}, testLogger())

		_, err := svc.CreateTask(ctx, partnerActor(), CreateTaskInput{ClientID: uuid.New(), DueDate: time.Now()})
		require.ErrorIs(t, err, ErrInvalidInput, "missing title")

		_, err = svc.CreateTask(ctx, partnerActor(), CreateTaskInput{Title: "x", DueDate: time.Now()})
		require.ErrorIs(t, err, ErrInvalidInput, "missing client")

		_, err = svc.CreateTask(ctx, partnerActor(), CreateTaskInput{Title: "x", ClientID: uuid.New()})
		require.ErrorIs(t, err, ErrInvalidInput, "missing due date")
	})
}

func TestTaskService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	tasks := newFakeTaskStore()
	invalidator := &recordingInvalidator{}
	svc := NewTaskService(tasks, invalidator, testLogger())

	task, err := svc.CreateTask(ctx, partnerActor(), CreateTaskInput{
		Title:    "Quarterly review",
		ClientID: uuid.New(),
		DueDate:  time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, partnerActor(), task.ID, models.TaskStatusDone))
	stored, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusDone, stored.Status)
	assert.Len(t, invalidator.changed, 2, "create and status change both invalidate")

	err = svc.UpdateStatus(ctx, partnerActor(), task.ID, "ARCHIVED")
	require.ErrorIs(t, err, ErrInvalidInput)

	err = svc.UpdateStatus(ctx, partnerActor(), uuid.New(), models.TaskStatusDone)
	require.ErrorIs(t, err, ErrNotFound)
}
