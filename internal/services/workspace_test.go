package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/satari/satari-api/internal/database"
	"github.com/satari/satari-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWorkspaceService(t *testing.T) (*WorkspaceService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewWorkspaceService(db), mock
}

func workspaceRows(id, ownerID uuid.UUID, name, description string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "owner_id", "name", "description", "created_at", "updated_at"}).
		AddRow(id, ownerID, name, description, now, now)
}

func TestWorkspaceService_Create(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	workspaceID := uuid.New()

	countRows := pgxmock.NewRows([]string{"count"}).AddRow(0)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM workspaces WHERE owner_id`).
		WithArgs(ownerID).
		WillReturnRows(countRows)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO workspaces \(owner_id, name, description\)`).
		WithArgs(ownerID, "My Workspace", "A description").
		WillReturnRows(workspaceRows(workspaceID, ownerID, "My Workspace", "A description"))
	mock.ExpectExec(`INSERT INTO workspace_members`).
		WithArgs(workspaceID, ownerID, models.RoleManager).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	ws, err := svc.Create(ctx, "My Workspace", "A description", ownerID)

	require.NoError(t, err)
	assert.Equal(t, workspaceID, ws.ID)
	assert.Equal(t, ownerID, ws.OwnerID)
	assert.Equal(t, "My Workspace", ws.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_Create_QuotaReached(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	ownerID := uuid.New()

	countRows := pgxmock.NewRows([]string{"count"}).AddRow(MaxOwnedWorkspaces)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM workspaces WHERE owner_id`).
		WithArgs(ownerID).
		WillReturnRows(countRows)

	_, err := svc.Create(ctx, "One Too Many", "", ownerID)

	assert.ErrorIs(t, err, ErrWorkspaceQuota)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_GetByID_NotFound(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM workspaces WHERE id`).
		WithArgs(workspaceID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByID(ctx, workspaceID)

	assert.ErrorIs(t, err, ErrWorkspaceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_Authorize_Owner(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM workspaces WHERE id`).
		WithArgs(workspaceID).
		WillReturnRows(workspaceRows(workspaceID, ownerID, "WS", ""))

	ws, rank, err := svc.Authorize(ctx, workspaceID, ownerID, models.RankOwner)

	require.NoError(t, err)
	assert.Equal(t, workspaceID, ws.ID)
	assert.Equal(t, models.RankOwner, rank)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_Authorize_ManagerBelowOwner(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	ownerID := uuid.New()
	managerID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM workspaces WHERE id`).
		WithArgs(workspaceID).
		WillReturnRows(workspaceRows(workspaceID, ownerID, "WS", ""))

	roleRows := pgxmock.NewRows([]string{"role"}).AddRow(models.RoleManager)
	mock.ExpectQuery(`SELECT role FROM workspace_members`).
		WithArgs(workspaceID, managerID).
		WillReturnRows(roleRows)

	_, _, err := svc.Authorize(ctx, workspaceID, managerID, models.RankOwner)

	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_Authorize_TeamMember(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	ownerID := uuid.New()
	memberID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM workspaces WHERE id`).
		WithArgs(workspaceID).
		WillReturnRows(workspaceRows(workspaceID, ownerID, "WS", ""))

	roleRows := pgxmock.NewRows([]string{"role"}).AddRow(models.RoleTeamMember)
	mock.ExpectQuery(`SELECT role FROM workspace_members`).
		WithArgs(workspaceID, memberID).
		WillReturnRows(roleRows)

	_, rank, err := svc.Authorize(ctx, workspaceID, memberID, models.RankTeamMember)

	require.NoError(t, err)
	assert.Equal(t, models.RankTeamMember, rank)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_Authorize_NonMember(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	ownerID := uuid.New()
	strangerID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM workspaces WHERE id`).
		WithArgs(workspaceID).
		WillReturnRows(workspaceRows(workspaceID, ownerID, "WS", ""))

	mock.ExpectQuery(`SELECT role FROM workspace_members`).
		WithArgs(workspaceID, strangerID).
		WillReturnError(pgx.ErrNoRows)

	_, _, err := svc.Authorize(ctx, workspaceID, strangerID, models.RankTeamMember)

	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_Members(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	managerID := uuid.New()
	memberID := uuid.New()

	rows := pgxmock.NewRows([]string{"user_id", "role"}).
		AddRow(managerID, models.RoleManager).
		AddRow(memberID, models.RoleTeamMember)
	mock.ExpectQuery(`SELECT user_id, role FROM workspace_members`).
		WithArgs(workspaceID).
		WillReturnRows(rows)

	managers, teamMembers, err := svc.Members(ctx, workspaceID)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{managerID}, managers)
	assert.Equal(t, []uuid.UUID{memberID}, teamMembers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_Members_Empty(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()

	rows := pgxmock.NewRows([]string{"user_id", "role"})
	mock.ExpectQuery(`SELECT user_id, role FROM workspace_members`).
		WithArgs(workspaceID).
		WillReturnRows(rows)

	managers, teamMembers, err := svc.Members(ctx, workspaceID)

	require.NoError(t, err)
	assert.NotNil(t, managers)
	assert.NotNil(t, teamMembers)
	assert.Empty(t, managers)
	assert.Empty(t, teamMembers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_GetUserWorkspaces(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	userID := uuid.New()
	ownedID := uuid.New()
	otherOwnerID := uuid.New()
	memberOfID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "owner_id", "name", "description", "created_at", "updated_at"}).
		AddRow(ownedID, userID, "Mine", "", now, now).
		AddRow(memberOfID, otherOwnerID, "Theirs", "", now, now)
	mock.ExpectQuery(`SELECT .+ FROM workspaces w`).
		WithArgs(userID).
		WillReturnRows(rows)

	mock.ExpectQuery(`SELECT user_id, role FROM workspace_members`).
		WithArgs(ownedID).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "role"}).
			AddRow(userID, models.RoleManager))

	mock.ExpectQuery(`SELECT user_id, role FROM workspace_members`).
		WithArgs(memberOfID).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "role"}).
			AddRow(otherOwnerID, models.RoleManager).
			AddRow(userID, models.RoleTeamMember))

	details, err := svc.GetUserWorkspaces(ctx, userID)

	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, models.RankOwner, details[0].Rank)
	assert.Equal(t, models.RankTeamMember, details[1].Rank)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_AddManager_NewMember(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	targetID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT role FROM workspace_members`).
		WithArgs(workspaceID, targetID).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec(`INSERT INTO workspace_members`).
		WithArgs(workspaceID, targetID, models.RoleManager).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := svc.AddManager(ctx, workspaceID, targetID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_AddManager_PromotesTeamMember(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	targetID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT role FROM workspace_members`).
		WithArgs(workspaceID, targetID).
		WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow(models.RoleTeamMember))
	mock.ExpectExec(`UPDATE workspace_members SET role`).
		WithArgs(models.RoleManager, workspaceID, targetID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := svc.AddManager(ctx, workspaceID, targetID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_AddManager_AlreadyManager(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	targetID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT role FROM workspace_members`).
		WithArgs(workspaceID, targetID).
		WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow(models.RoleManager))
	mock.ExpectRollback()

	err := svc.AddManager(ctx, workspaceID, targetID)

	assert.ErrorIs(t, err, ErrAlreadyManager)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_AddTeamMember_NewMember(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	targetID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT role FROM workspace_members`).
		WithArgs(workspaceID, targetID).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec(`INSERT INTO workspace_members`).
		WithArgs(workspaceID, targetID, models.RoleTeamMember).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := svc.AddTeamMember(ctx, workspaceID, targetID, false)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_AddTeamMember_DemoteRequiresOwner(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	targetID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT role FROM workspace_members`).
		WithArgs(workspaceID, targetID).
		WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow(models.RoleManager))
	mock.ExpectRollback()

	err := svc.AddTeamMember(ctx, workspaceID, targetID, false)

	assert.ErrorIs(t, err, ErrOnlyOwnerCanDemote)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_AddTeamMember_OwnerDemotesManager(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	targetID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT role FROM workspace_members`).
		WithArgs(workspaceID, targetID).
		WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow(models.RoleManager))
	mock.ExpectExec(`UPDATE workspace_members SET role`).
		WithArgs(models.RoleTeamMember, workspaceID, targetID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := svc.AddTeamMember(ctx, workspaceID, targetID, true)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_AddTeamMember_AlreadyTeamMember(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	targetID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT role FROM workspace_members`).
		WithArgs(workspaceID, targetID).
		WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow(models.RoleTeamMember))
	mock.ExpectRollback()

	err := svc.AddTeamMember(ctx, workspaceID, targetID, true)

	assert.ErrorIs(t, err, ErrAlreadyTeamMember)
	assert.NoError(t, mock.ExpectationsWereMet())
}
