package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayroman1160/agencyos/internal/auth"
	"github.com/rayroman1160/agencyos/internal/models"
)

func adminActor() auth.Actor {
	return auth.Actor{ID: uuid.New(), Email: "admin@agency.test", Role: models.RoleAdmin}
}

func partnerActor() auth.Actor {
	return auth.Actor{ID: uuid.New(), Email: "partner@agency.test", Role: models.RolePartner}
}

// seedOnboardingTemplate stores the canonical three-blueprint template.
func seedOnboardingTemplate(t *testing.T, templates *fakeTemplateStore) uuid.UUID {
	t.Helper()

	tpl := &models.ServiceTemplate{
		ID:        uuid.New(),
		Name:      "Onboarding",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, templates.Create(context.Background(), tpl))

	blueprints := []struct {
		title string
		days  int
		role  string
	}{
		{"Kickoff call", 0, models.RolePartner},
		{"Send contract", 2, ""},
		{"First deliverable", 14, models.RoleVA},
	}
	for _, bp := range blueprints {
		task := &models.TemplateTask{
			ID:                uuid.New(),
			ServiceTemplateID: tpl.ID,
			Title:             bp.title,
			RelativeDueDays:   bp.days,
		}
		if bp.role != "" {
			task.DefaultRole = sql.NullString{String: bp.role, Valid: true}
		}
		require.NoError(t, templates.AddTask(context.Background(), task))
	}
	return tpl.ID
}

func TestTemplateService_ApplyTemplate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates one task per blueprint with offset due dates", func(t *testing.T) {
		templates := newFakeTemplateStore()
		tasks := newFakeTaskStore()
		invalidator := &recordingInvalidator{}
		svc := NewTemplateService(templates, tasks, invalidator, testLogger())

		templateID := seedOnboardingTemplate(t, templates)
		clientID := uuid.New()
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		require.NoError(t, svc.ApplyTemplate(ctx, partnerActor(), clientID, templateID, start))

		created, err := tasks.ListByClient(ctx, clientID)
		require.NoError(t, err)
		require.Len(t, created, 3)

		wantDue := map[string]time.Time{
			"Kickoff call":      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			"Send contract":     time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			"First deliverable": time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		}
		for _, task := range created {
			assert.Equal(t, models.TaskStatusTodo, task.Status)
			assert.Equal(t, clientID, task.ClientID)
			assert.False(t, task.AssigneeID.Valid, "tasks must not be auto-assigned")
			assert.Equal(t, wantDue[task.Title], task.DueDate, "due date for %q", task.Title)
		}

		assert.Equal(t, []uuid.UUID{clientID}, invalidator.changed)
	})

	t.Run("start date time-of-day does not shift due dates", func(t *testing.T) {
		templates := newFakeTemplateStore()
		tasks := newFakeTaskStore()
		svc := NewTemplateService(templates, tasks, NopInvalidator{}, testLogger())

		templateID := seedOnboardingTemplate(t, templates)
		clientID := uuid.New()
		// Late evening in a DST-observing zone.
		zone := time.FixedZone("CEST", 2*60*60)
		start := time.Date(2024, 3, 30, 23, 30, 0, 0, zone)

		require.NoError(t, svc.ApplyTemplate(ctx, partnerActor(), clientID, templateID, start))

		created, err := tasks.ListByClient(ctx, clientID)
		require.NoError(t, err)
		for _, task := range created {
			assert.Equal(t, time.UTC, task.DueDate.Location())
			h, m, s := task.DueDate.Clock()
			assert.Zero(t, h+m+s, "due dates must be plain calendar days")
		}
	})

	t.Run("unknown template creates nothing", func(t *testing.T) {
		templates := newFakeTemplateStore()
		tasks := newFakeTaskStore()
		invalidator := &recordingInvalidator{}
		svc := NewTemplateService(templates, tasks, invalidator, testLogger())

		err := svc.ApplyTemplate(ctx, partnerActor(), uuid.New(), uuid.New(), time.Now())
		require.ErrorIs(t, err, ErrNotFound)
		assert.Empty(t, tasks.tasks)
		assert.Empty(t, invalidator.changed)
	})

	t.Run("failed batch commits nothing", func(t *testing.T) {
		templates := newFakeTemplateStore()
		tasks := newFakeTaskStore()
		tasks.batchErr = errors.New("connection reset")
		invalidator := &recordingInvalidator{}
		svc := NewTemplateService(templates, tasks, invalidator, testLogger())

		templateID := seedOnboardingTemplate(t, templates)

		err := svc.ApplyTemplate(ctx, partnerActor(), uuid.New(), templateID, time.Now())
		require.Error(t, err)
		assert.Empty(t, tasks.tasks, "no partial state after a failed transaction")
		assert.Empty(t, invalidator.changed, "no invalidation without a commit")
	})

	t.Run("rejects missing identifiers before touching the store", func(t *testing.T) {
		svc := NewTemplateService(newFakeTemplateStore(), newFakeTaskStore(), NopInvalidator{}, testLogger())

		err := svc.ApplyTemplate(ctx, partnerActor(), uuid.Nil, uuid.New(), time.Now())
		require.ErrorIs(t, err, ErrInvalidInput)

		err = svc.ApplyTemplate(ctx, partnerActor(), uuid.New(), uuid.New(), time.Time{})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty template applies cleanly", func(t *testing.T) {
		templates := newFakeTemplateStore()
		tasks := newFakeTaskStore()
		svc := NewTemplateService(templates, tasks, NopInvalidator{}, testLogger())

		tpl := &models.ServiceTemplate{ID: uuid.New(), Name: "Empty", CreatedAt: time.Now().UTC()}
		require.NoError(t, templates.Create(ctx, tpl))

		require.NoError(t, svc.ApplyTemplate(ctx, partnerActor(), uuid.New(), tpl.ID, time.Now()))
		assert.Empty(t, tasks.tasks)
	})
}

func TestTemplateService_CreateTemplate(t *testing.T) {
	ctx := context.Background()
	templates := newFakeTemplateStore()
	svc := NewTemplateService(templates, newFakeTaskStore(), NopInvalidator{}, testLogger())

	t.Run("admin can create", func(t *testing.T) {
		tpl, err := svc.CreateTemplate(ctx, adminActor(), CreateTemplateInput{Name: "Onboarding", Description: "New client setup"})
		require.NoError(t, err)
		assert.Equal(t, "Onboarding", tpl.Name)
		assert.True(t, tpl.Description.Valid)
	})

	t.Run("non-admin is rejected", func(t *testing.T) {
		_, err := svc.CreateTemplate(ctx, partnerActor(), CreateTemplateInput{Name: "Nope"})
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		_, err := svc.CreateTemplate(ctx, adminActor(), CreateTemplateInput{Name: "   "})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestTemplateService_AddBlueprint(t *testing.T) {
	ctx := context.Background()
	templates := newFakeTemplateStore()
	svc := NewTemplateService(templates, newFakeTaskStore(), NopInvalidator{}, testLogger())
	templateID := seedOnboardingTemplate(t, templates)

	tests := []struct {
		name       string
		actor      auth.Actor
		templateID uuid.UUID
		input      AddBlueprintInput
		wantErr    error
	}{
		{
			name:       "valid blueprint",
			actor:      adminActor(),
			templateID: templateID,
			input:      AddBlueprintInput{Title: "Review call", RelativeDueDays: 30, DefaultRole: models.RoleVA},
		},
		{
			name:       "non-admin rejected",
			actor:      partnerActor(),
			templateID: templateID,
			input:      AddBlueprintInput{Title: "Review call", RelativeDueDays: 30},
			wantErr:    ErrUnauthorized,
		},
		{
			name:       "negative offset rejected",
			actor:      adminActor(),
			templateID: templateID,
			input:      AddBlueprintInput{Title: "Review call", RelativeDueDays: -1},
			wantErr:    ErrInvalidInput,
		},
		{
			name:       "unknown role rejected",
			actor:      adminActor(),
			templateID: templateID,
			input:      AddBlueprintInput{Title: "Review call", DefaultRole: "INTERN"},
			wantErr:    ErrInvalidInput,
		},
		{
			name:       "unknown template",
			actor:      adminActor(),
			templateID: uuid.New(),
			input:      AddBlueprintInput{Title: "Review call"},
			wantErr:    ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bp, err := svc.AddBlueprint(ctx, tt.actor, tt.templateID, tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input.Title, bp.Title)
			assert.Equal(t, 4, bp.Position, "appended after the seeded blueprints")
		})
	}
}
