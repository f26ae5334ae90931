package service_test

import (
	"testing"

	"ai-character-chat/backend/internal/models"
	"ai-character-chat/backend/internal/service"
	"ai-character-chat/backend/internal/testutil"
	apperrors "ai-character-chat/backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countDefaults(t *testing.T, personas *service.PersonaService, userID string) int {
	t.Helper()
	all, err := personas.ListPersonas(userID)
	require.NoError(t, err)
	n := 0
	for _, p := range all {
		if p.IsDefault {
			n++
		}
	}
	return n
}

func TestPersonaService_FirstPersonaBecomesDefault(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	personas := service.NewPersonaService(testDB.DB)
	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	created, err := personas.CreatePersona(user.ID, &models.CreatePersonaRequest{
		Name:      "First",
		IsDefault: false,
	})
	require.NoError(t, err)
	assert.True(t, created.IsDefault, "first persona must become default regardless of the flag")
}

func TestPersonaService_RepeatedDefaultCreatesKeepSingleDefault(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	personas := service.NewPersonaService(testDB.DB)
	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	for i := 0; i < 5; i++ {
		_, err := personas.CreatePersona(user.ID, &models.CreatePersonaRequest{
			Name:      "Persona",
			IsDefault: true,
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 1, countDefaults(t, personas, user.ID))
}

func TestPersonaService_SetDefault(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	personas := service.NewPersonaService(testDB.DB)
	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	first, err := personas.CreatePersona(user.ID, &models.CreatePersonaRequest{Name: "A"})
	require.NoError(t, err)
	second, err := personas.CreatePersona(user.ID, &models.CreatePersonaRequest{Name: "B"})
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	promoted, err := personas.SetDefaultPersona(user.ID, second.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsDefault)

	reread, err := personas.GetPersona(user.ID, first.ID)
	require.NoError(t, err)
	assert.False(t, reread.IsDefault)
	assert.Equal(t, 1, countDefaults(t, personas, user.ID))
}

func TestPersonaService_DeleteSolePersonaRejected(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	personas := service.NewPersonaService(testDB.DB)
	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	only, err := personas.CreatePersona(user.ID, &models.CreatePersonaRequest{Name: "Only"})
	require.NoError(t, err)

	err = personas.DeletePersona(user.ID, only.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.GetStatusCode(err))
	assert.Equal(t, "LAST_PERSONA", apperrors.FromError(err).Code)
}

func TestPersonaService_DeleteDefaultPromotesOldest(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	personas := service.NewPersonaService(testDB.DB)
	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	first, err := personas.CreatePersona(user.ID, &models.CreatePersonaRequest{Name: "A"})
	require.NoError(t, err)
	second, err := personas.CreatePersona(user.ID, &models.CreatePersonaRequest{Name: "B"})
	require.NoError(t, err)
	third, err := personas.CreatePersona(user.ID, &models.CreatePersonaRequest{Name: "C"})
	require.NoError(t, err)

	require.NoError(t, personas.DeletePersona(user.ID, first.ID))

	def, err := personas.GetDefaultPersona(user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, def.ID, "oldest remaining persona is promoted")
	_ = third
	assert.Equal(t, 1, countDefaults(t, personas, user.ID))
}

func TestPersonaService_DeleteNonDefaultLeavesDefaultUnchanged(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	personas := service.NewPersonaService(testDB.DB)
	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	first, err := personas.CreatePersona(user.ID, &models.CreatePersonaRequest{Name: "A"})
	require.NoError(t, err)
	second, err := personas.CreatePersona(user.ID, &models.CreatePersonaRequest{Name: "B"})
	require.NoError(t, err)

	require.NoError(t, personas.DeletePersona(user.ID, second.ID))

	def, err := personas.GetDefaultPersona(user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, def.ID)
}

func TestPersonaService_GetDefaultFallbackDoesNotPersist(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	personas := service.NewPersonaService(testDB.DB)
	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	created, err := personas.CreatePersona(user.ID, &models.CreatePersonaRequest{Name: "A"})
	require.NoError(t, err)

	// Simulate legacy data with no flagged default.
	require.NoError(t, testDB.DB.Model(&models.Persona{}).
		Where("id = ?", created.ID).Update("is_default", false).Error)

	def, err := personas.GetDefaultPersona(user.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, def.ID)

	// The read path must not have written the promotion back.
	assert.Equal(t, 0, countDefaults(t, personas, user.ID))
}

func TestPersonaService_UpdateFields(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	personas := service.NewPersonaService(testDB.DB)
	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	created, err := personas.CreatePersona(user.ID, &models.CreatePersonaRequest{
		Name:        "Original",
		Description: "before",
	})
	require.NoError(t, err)

	newName := "Renamed"
	updated, err := personas.UpdatePersona(user.ID, created.ID, &models.UpdatePersonaRequest{
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "before", updated.Description, "absent fields are untouched")
}

func TestPersonaService_OwnershipScoped(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	personas := service.NewPersonaService(testDB.DB)
	owner := testutil.NewUserBuilder().Build(t, testDB.DB)
	other := testutil.NewUserBuilder().Build(t, testDB.DB)

	created, err := personas.CreatePersona(owner.ID, &models.CreatePersonaRequest{Name: "Mine"})
	require.NoError(t, err)

	_, err = personas.GetPersona(other.ID, created.ID)
	assert.Equal(t, 404, apperrors.GetStatusCode(err))
}
