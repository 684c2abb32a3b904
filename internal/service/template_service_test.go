package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superplace/growth-report-api/internal/dto"
	"github.com/superplace/growth-report-api/internal/models"
	appErrors "github.com/superplace/growth-report-api/pkg/errors"
)

type templateStoreStub struct {
	items      map[string]models.Template
	createErr  error
	seedCalled int
}

func newTemplateStoreStub() *templateStoreStub {
	return &templateStoreStub{items: make(map[string]models.Template)}
}

func (s *templateStoreStub) Create(ctx context.Context, tpl *models.Template) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.items[tpl.ID] = *tpl
	return nil
}

func (s *templateStoreStub) GetByID(ctx context.Context, id string) (*models.Template, error) {
	if tpl, ok := s.items[id]; ok {
		return &tpl, nil
	}
	return nil, sql.ErrNoRows
}

func (s *templateStoreStub) List(ctx context.Context) ([]models.Template, error) {
	result := make([]models.Template, 0, len(s.items))
	for _, tpl := range s.items {
		result = append(result, tpl)
	}
	return result, nil
}

func (s *templateStoreStub) Update(ctx context.Context, tpl *models.Template) (int64, error) {
	if _, ok := s.items[tpl.ID]; !ok {
		return 0, nil
	}
	s.items[tpl.ID] = *tpl
	return 1, nil
}

func (s *templateStoreStub) DeleteUnused(ctx context.Context, id string) (int64, error) {
	tpl, ok := s.items[id]
	if !ok || tpl.UsageCount > 0 {
		return 0, nil
	}
	delete(s.items, id)
	return 1, nil
}

func (s *templateStoreStub) SeedInsert(ctx context.Context, tpl *models.Template) (bool, error) {
	s.seedCalled++
	if _, ok := s.items[tpl.ID]; ok {
		return false, nil
	}
	s.items[tpl.ID] = *tpl
	return true, nil
}

func newTestTemplateService(store *templateStoreStub) *TemplateService {
	return NewTemplateService(store, NewRenderService(), nil, nil)
}

func TestTemplateServiceCreateScansVariables(t *testing.T) {
	store := newTemplateStoreStub()
	svc := newTestTemplateService(store)

	tpl, err := svc.Create(context.Background(), dto.CreateTemplateRequest{
		Name: "  Monthly Report  ",
		Body: "Hello {{name}}, score {{score}} and again {{name}}",
	}, &models.JWTClaims{UserID: "admin-1"})
	require.NoError(t, err)
	assert.Equal(t, "Monthly Report", tpl.Name)
	assert.Equal(t, []string{"name", "score"}, []string(tpl.Variables))
	assert.False(t, tpl.IsDefault)
	assert.Zero(t, tpl.UsageCount)
}

func TestTemplateServiceCreateRejectsBlankFields(t *testing.T) {
	svc := newTestTemplateService(newTemplateStoreStub())

	_, err := svc.Create(context.Background(), dto.CreateTemplateRequest{Name: "   ", Body: "x"}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), dto.CreateTemplateRequest{Name: "x", Body: "   "}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTemplateServiceUpdateRescansVariables(t *testing.T) {
	store := newTemplateStoreStub()
	store.items["tpl-1"] = models.Template{ID: "tpl-1", Name: "Old", Body: "{{old}}", Variables: models.StringSlice{"old"}}
	svc := newTestTemplateService(store)

	tpl, err := svc.Update(context.Background(), "tpl-1", dto.UpdateTemplateRequest{
		Name: "New",
		Body: "{{fresh}}",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, []string(tpl.Variables))
}

func TestTemplateServiceUpdateMissing(t *testing.T) {
	svc := newTestTemplateService(newTemplateStoreStub())
	_, err := svc.Update(context.Background(), "absent", dto.UpdateTemplateRequest{Name: "n", Body: "b"}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTemplateServiceDuplicate(t *testing.T) {
	store := newTemplateStoreStub()
	desc := "starter"
	store.items["tpl-1"] = models.Template{
		ID: "tpl-1", Name: "Growth Report", Description: &desc,
		Body: "{{name}}", Variables: models.StringSlice{"name"},
		IsDefault: true, UsageCount: 7,
	}
	svc := newTestTemplateService(store)

	copyTpl, err := svc.Duplicate(context.Background(), "tpl-1", nil)
	require.NoError(t, err)
	assert.NotEqual(t, "tpl-1", copyTpl.ID)
	assert.Equal(t, "Growth Report (copy)", copyTpl.Name)
	assert.Equal(t, "{{name}}", copyTpl.Body)
	assert.False(t, copyTpl.IsDefault)
	assert.Zero(t, copyTpl.UsageCount)

	// The source row is untouched.
	source := store.items["tpl-1"]
	assert.Equal(t, "Growth Report", source.Name)
	assert.Equal(t, 7, source.UsageCount)
}

func TestTemplateServiceDeleteUnused(t *testing.T) {
	store := newTemplateStoreStub()
	store.items["tpl-1"] = models.Template{ID: "tpl-1", UsageCount: 0}
	svc := newTestTemplateService(store)

	require.NoError(t, svc.Delete(context.Background(), "tpl-1", nil))
	assert.NotContains(t, store.items, "tpl-1")
}

func TestTemplateServiceDeleteBlockedWhileReferenced(t *testing.T) {
	store := newTemplateStoreStub()
	store.items["tpl-1"] = models.Template{ID: "tpl-1", UsageCount: 2}
	svc := newTestTemplateService(store)

	err := svc.Delete(context.Background(), "tpl-1", nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDeletionBlocked.Code, appErrors.FromError(err).Code)
	assert.Contains(t, store.items, "tpl-1")
}

func TestTemplateServiceDeleteMissing(t *testing.T) {
	svc := newTestTemplateService(newTemplateStoreStub())
	err := svc.Delete(context.Background(), "absent", nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTemplateServiceSeedIsIdempotent(t *testing.T) {
	store := newTemplateStoreStub()
	svc := newTestTemplateService(store)

	first, err := svc.SeedDefaults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(starterTemplates()), first.Installed)
	assert.Zero(t, first.Skipped)

	second, err := svc.SeedDefaults(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second.Installed)
	assert.Equal(t, len(starterTemplates()), second.Skipped)
}

func TestTemplateServiceSeedPreservesEditedRows(t *testing.T) {
	store := newTemplateStoreStub()
	svc := newTestTemplateService(store)
	_, err := svc.SeedDefaults(context.Background())
	require.NoError(t, err)

	edited := store.items["tpl_student_report_001"]
	edited.Name = "Customised"
	store.items["tpl_student_report_001"] = edited

	_, err = svc.SeedDefaults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Customised", store.items["tpl_student_report_001"].Name)
}

func TestStarterCatalogHasOneDefault(t *testing.T) {
	defaults := 0
	for _, tpl := range starterTemplates() {
		if tpl.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
}
